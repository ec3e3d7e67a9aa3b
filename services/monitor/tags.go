package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"horizon-monitoring/lib/dateutil"
	"horizon-monitoring/lib/scrapers/rcl"

	"go.opentelemetry.io/otel/attribute"
)

// Tag is one subject tag from the tag configuration. Entries may be
// written as full objects or as bare ids.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

func (t *Tag) UnmarshalJSON(data []byte) error {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		*t = Tag{ID: id}
		return nil
	}
	var idString string
	if err := json.Unmarshal(data, &idString); err == nil {
		parsed, err := strconv.ParseInt(idString, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid tag id %q", idString)
		}
		*t = Tag{ID: parsed}
		return nil
	}

	type plain Tag
	var tag plain
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	*t = Tag(tag)
	return nil
}

// TagSearcher runs subject-tag searches. Satisfied by
// rcl.SearchSession.
type TagSearcher interface {
	SearchByTag(ctx context.Context, tagID int64, start, end time.Time) ([]rcl.SearchResult, error)
}

// RCLTagMonitor sweeps the portal for projects carrying any of the
// configured subject tags and modified within the date range.
type RCLTagMonitor struct {
	searcher TagSearcher
}

func NewRCLTagMonitor(searcher TagSearcher) *RCLTagMonitor {
	return &RCLTagMonitor{searcher: searcher}
}

// Monitor searches every tag in turn and concatenates the results. A
// failed tag search is logged and skipped.
func (m *RCLTagMonitor) Monitor(ctx context.Context, tags []Tag, start, end time.Time) ([]rcl.SearchResult, error) {
	ctx, span := tracer.Start(ctx, "RCLTagMonitor.Monitor")
	defer span.End()
	span.SetAttributes(attribute.Int("tags", len(tags)))

	slog.Info("monitoring rcl subject tags",
		"start", start.Format(dateutil.DateFormat),
		"end", end.Format(dateutil.DateFormat),
		"tags", len(tags))

	var all []rcl.SearchResult
	for _, tag := range tags {
		results, err := m.searcher.SearchByTag(ctx, tag.ID, start, end)
		if err != nil {
			slog.Error("tag search failed", "tag", tag.ID, "err", err)
			continue
		}
		slog.Debug("tag search done", "tag", tag.ID, "results", len(results))
		all = append(all, results...)
	}
	return all, nil
}
