// Package monitor implements the date-scoped monitoring runs: checking
// tracked projects on both portals for changes and discovering new
// projects through the RCL search form.
package monitor

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// ProjectPageFetcher downloads RCL project detail pages. Satisfied by
// rcl.Client.
type ProjectPageFetcher interface {
	FetchProjectPage(ctx context.Context, projectID int64) (*goquery.Document, error)
}

// ProcessPageFetcher downloads Sejm process pages. Satisfied by
// sejm.Client.
type ProcessPageFetcher interface {
	FetchProcessPage(ctx context.Context, printNumber string) (*goquery.Document, error)
}
