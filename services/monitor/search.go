package monitor

import (
	"context"
	"log/slog"
	"time"

	"horizon-monitoring/lib/dateutil"
	"horizon-monitoring/lib/scrapers/rcl"
	"horizon-monitoring/services/projectstore"

	"go.opentelemetry.io/otel/attribute"
)

// Query is one configured search by external identifier. Either field
// may be empty; a query with both runs two searches and unions the
// results.
type Query struct {
	UEActNumber string `json:"ue_act_number,omitempty"`
	Title       string `json:"title,omitempty"`
	KPRMNumber  string `json:"kprm_number,omitempty"`
}

// QuerySearcher runs identifier searches on a stateful search form.
// Satisfied by rcl.SearchSession.
type QuerySearcher interface {
	SearchByUEAct(ctx context.Context, ueActNumber string, start, end time.Time) ([]rcl.SearchResult, error)
	SearchByKPRMNumber(ctx context.Context, kprmNumber string, start, end time.Time) ([]rcl.SearchResult, error)
	ClearForm(ctx context.Context) error
}

// RCLSearchMonitor discovers projects by UE act number or KPRM
// register number and emits them as tracked-item stubs ready to paste
// into the projects file.
type RCLSearchMonitor struct {
	searcher QuerySearcher
}

func NewRCLSearchMonitor(searcher QuerySearcher) *RCLSearchMonitor {
	return &RCLSearchMonitor{searcher: searcher}
}

// Monitor runs every query on one shared search session, clearing the
// form between searches. Results are deduplicated by project id across
// all queries; failed searches are logged and skipped.
func (m *RCLSearchMonitor) Monitor(ctx context.Context, queries []Query, start, end time.Time) ([]projectstore.TrackedItem, error) {
	ctx, span := tracer.Start(ctx, "RCLSearchMonitor.Monitor")
	defer span.End()
	span.SetAttributes(attribute.Int("queries", len(queries)))

	slog.Info("searching rcl projects by external identifiers",
		"start", start.Format(dateutil.DateFormat),
		"end", end.Format(dateutil.DateFormat),
		"queries", len(queries))

	var stubs []projectstore.TrackedItem
	seen := map[int64]bool{}

	for i, query := range queries {
		results := m.runQuery(ctx, i+1, len(queries), query, start, end)

		for _, result := range results {
			if result.ID == 0 || seen[result.ID] {
				continue
			}
			seen[result.ID] = true
			stubs = append(stubs, projectstore.TrackedItem{
				ID:     result.ID,
				Title:  result.Title,
				Number: result.Number,
				Source: projectstore.SourceRCL,
			})
		}

		if i < len(queries)-1 {
			if err := m.searcher.ClearForm(ctx); err != nil {
				slog.Error("failed to clear search form", "err", err)
			}
		}
	}
	return stubs, nil
}

func (m *RCLSearchMonitor) runQuery(ctx context.Context, index, total int, query Query, start, end time.Time) []rcl.SearchResult {
	var results []rcl.SearchResult

	if query.UEActNumber != "" {
		slog.Info("searching by ue act", "query", index, "of", total, "value", query.UEActNumber)
		found, err := m.searcher.SearchByUEAct(ctx, query.UEActNumber, start, end)
		if err != nil {
			slog.Error("ue act search failed", "value", query.UEActNumber, "err", err)
		} else {
			results = append(results, found...)
		}
		if query.KPRMNumber != "" {
			if err := m.searcher.ClearForm(ctx); err != nil {
				slog.Error("failed to clear search form", "err", err)
			}
		}
	}

	if query.KPRMNumber != "" {
		slog.Info("searching by kprm number", "query", index, "of", total, "value", query.KPRMNumber)
		found, err := m.searcher.SearchByKPRMNumber(ctx, query.KPRMNumber, start, end)
		if err != nil {
			slog.Error("kprm number search failed", "value", query.KPRMNumber, "err", err)
		} else {
			results = append(results, found...)
		}
	}

	if query.UEActNumber == "" && query.KPRMNumber == "" {
		slog.Warn("query has no searchable value, skipping", "query", index, "of", total)
	}
	return results
}
