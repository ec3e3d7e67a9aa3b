package monitor

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"horizon-monitoring/lib/dateutil"
	"horizon-monitoring/lib/scrapers/sejm"
	"horizon-monitoring/services/projectstore"

	"go.opentelemetry.io/otel/attribute"
)

// SejmProjectMonitor checks legislative-process pages of the tracked
// Sejm prints. Unlike the RCL monitor it rebuilds referred_to from
// scratch every run: stages only reflect the queried range.
type SejmProjectMonitor struct {
	store   *projectstore.Store
	fetcher ProcessPageFetcher
}

func NewSejmProjectMonitor(store *projectstore.Store, fetcher ProcessPageFetcher) *SejmProjectMonitor {
	return &SejmProjectMonitor{store: store, fetcher: fetcher}
}

// Monitor fetches the process page of every tracked Sejm print and
// records the stages dated within [start, end]. last_hit becomes the
// newest in-range stage date; projects without in-range stages end up
// with an empty referred_to.
func (m *SejmProjectMonitor) Monitor(ctx context.Context, start, end time.Time) ([]projectstore.TrackedItem, error) {
	ctx, span := tracer.Start(ctx, "SejmProjectMonitor.Monitor")
	defer span.End()

	all, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	projects := projectstore.FilterBySource(all, projectstore.SourceSejm)
	if len(projects) == 0 {
		slog.Warn("no sejm projects to monitor")
		return nil, nil
	}

	slog.Info("monitoring sejm projects",
		"start", start.Format(dateutil.DateFormat),
		"end", end.Format(dateutil.DateFormat),
		"count", len(projects))
	span.SetAttributes(attribute.Int("projects", len(projects)))

	updated := make([]projectstore.TrackedItem, 0, len(projects))
	for _, project := range projects {
		project.ReferredTo = nil

		doc, err := m.fetcher.FetchProcessPage(ctx, strconv.FormatInt(project.ID, 10))
		if err != nil {
			slog.Error("failed to fetch process page", "print", project.ID, "err", err)
			updated = append(updated, project)
			continue
		}

		stages := sejm.ParseProcessStages(doc)
		if len(stages) == 0 {
			slog.Debug("no stages on process page", "print", project.ID)
			updated = append(updated, project)
			continue
		}

		var inRange []sejm.Stage
		var latest time.Time
		for _, stage := range stages {
			if stage.Date.Before(start) || stage.Date.After(end) {
				continue
			}
			inRange = append(inRange, stage)
			if stage.Date.After(latest) {
				latest = stage.Date
			}
		}

		if len(inRange) > 0 {
			project.LastHit = latest.Format(dateutil.DateFormat)
			project.ReferredTo = inRange
			slog.Info("print changed in range",
				"print", project.ID,
				"last_hit", project.LastHit,
				"stages", len(inRange))
		} else {
			slog.Debug("no stages in range", "print", project.ID)
		}
		updated = append(updated, project)
	}

	if err := m.store.Save(projectstore.Merge(all, updated)); err != nil {
		return nil, err
	}
	return updated, nil
}
