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

// RCLProjectMonitor checks the tracked RCL projects for modifications
// in a date range. A project that shows no modification in the range
// keeps its previous last_hit.
type RCLProjectMonitor struct {
	store   *projectstore.Store
	fetcher ProjectPageFetcher
}

func NewRCLProjectMonitor(store *projectstore.Store, fetcher ProjectPageFetcher) *RCLProjectMonitor {
	return &RCLProjectMonitor{store: store, fetcher: fetcher}
}

// Monitor fetches every tracked RCL project, updates last_hit for
// those modified within [start, end] and persists the whole store.
// Fetch and parse failures leave the affected project unchanged.
func (m *RCLProjectMonitor) Monitor(ctx context.Context, start, end time.Time) ([]projectstore.TrackedItem, error) {
	ctx, span := tracer.Start(ctx, "RCLProjectMonitor.Monitor")
	defer span.End()

	all, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	projects := projectstore.FilterBySource(all, projectstore.SourceRCL)
	if len(projects) == 0 {
		slog.Warn("no rcl projects to monitor")
		return nil, nil
	}

	slog.Info("monitoring rcl projects",
		"start", start.Format(dateutil.DateFormat),
		"end", end.Format(dateutil.DateFormat),
		"count", len(projects))
	span.SetAttributes(attribute.Int("projects", len(projects)))

	updated := make([]projectstore.TrackedItem, 0, len(projects))
	for _, project := range projects {
		project = projectstore.EnsureSource(project, projectstore.SourceRCL)

		doc, err := m.fetcher.FetchProjectPage(ctx, project.ID)
		if err != nil {
			slog.Error("failed to fetch project page", "id", project.ID, "err", err)
			updated = append(updated, project)
			continue
		}

		dates := rcl.ExtractModificationDates(doc)
		if len(dates) == 0 {
			slog.Debug("no modification dates on project page", "id", project.ID)
			updated = append(updated, project)
			continue
		}

		if lastHit, ok := rcl.LatestInRange(dates, start, end); ok {
			project.LastHit = lastHit.Format(dateutil.DateFormat)
			slog.Info("project changed in range", "id", project.ID, "last_hit", project.LastHit)
		} else {
			slog.Debug("no changes in range", "id", project.ID)
		}
		updated = append(updated, project)
	}

	if err := m.store.Save(projectstore.Merge(all, updated)); err != nil {
		return nil, err
	}
	return updated, nil
}
