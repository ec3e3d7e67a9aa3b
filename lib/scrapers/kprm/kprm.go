// Package kprm downloads the legislative work register published by the
// Chancellery of the Prime Minister on gov.pl. The register ships as a
// CSV file; the direct URL usually works, with a browser fallback that
// hunts for the download link on the register page.
package kprm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"horizon-monitoring/lib/browser"
	"horizon-monitoring/lib/restyutil"
	"horizon-monitoring/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const (
	BaseURL      = "https://www.gov.pl"
	RegisterURL  = BaseURL + "/web/premier/wplip-rm"
	DirectCSVURL = BaseURL + "/register-file/Rejestr_20874195.csv"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type Fetcher struct {
	http        *resty.Client
	registerUrl string
	directUrl   string

	// NewSession opens the browser used by the page fallback. Swapped
	// out in tests.
	NewSession func(opts browser.Options) (browser.Session, error)
}

func NewFetcher(registerUrl, directUrl string) *Fetcher {
	client := resty.New()
	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(time.Second * 60)

	telemetry.InstrumentResty(client, "scrapers/kprm/http")
	restyutil.InstrumentClient(client, restyInstrumentOutput)

	return &Fetcher{
		http:        client,
		registerUrl: registerUrl,
		directUrl:   directUrl,
		NewSession: func(opts browser.Options) (browser.Session, error) {
			return browser.Open(opts)
		},
	}
}

// Download fetches the register CSV into outputFile. It tries the
// direct URL first and falls back to discovering the download link on
// the register page with a browser.
func (f *Fetcher) Download(ctx context.Context, outputFile string) error {
	ctx, span := tracer.Start(ctx, "Download")
	defer span.End()

	if err := f.tryDirectDownload(ctx, outputFile); err == nil {
		return nil
	} else {
		slog.Debug("direct register download failed, falling back to page", "err", err)
	}

	if err := f.downloadViaPage(ctx, outputFile); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to download register")
		return err
	}
	return nil
}

func (f *Fetcher) tryDirectDownload(ctx context.Context, outputFile string) error {
	res, err := f.http.R().
		SetContext(ctx).
		Get(f.directUrl)
	if err != nil {
		return &ConnectionError{URL: f.directUrl, Err: err}
	}
	if res.IsError() {
		return &ConnectionError{URL: f.directUrl, Err: fmt.Errorf("status %d", res.StatusCode())}
	}
	return f.writeFile(outputFile, res.Body())
}

func (f *Fetcher) downloadViaPage(ctx context.Context, outputFile string) error {
	session, err := f.NewSession(browser.Options{
		UserAgent: userAgent,
		// the register page needs several seconds of script work
		// before the download widget appears
		SettleDelay: time.Second * 5,
	})
	if err != nil {
		return &ConnectionError{URL: f.registerUrl, Err: err}
	}
	defer session.Close()

	if err := session.Navigate(ctx, f.registerUrl); err != nil {
		return &ConnectionError{URL: f.registerUrl, Err: err}
	}
	html, err := session.Content(ctx)
	if err != nil {
		return &ConnectionError{URL: f.registerUrl, Err: err}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &ParseError{What: "register page", Err: err}
	}

	fileUrl := findDownloadURL(doc)
	if fileUrl == "" {
		return &ParseError{What: "register page", Err: fmt.Errorf("no csv download link found")}
	}
	if strings.HasPrefix(fileUrl, "/") {
		fileUrl = BaseURL + fileUrl
	}

	res, err := f.http.R().
		SetContext(ctx).
		Get(fileUrl)
	if err != nil {
		return &ConnectionError{URL: fileUrl, Err: err}
	}
	if res.IsError() {
		return &ConnectionError{URL: fileUrl, Err: fmt.Errorf("status %d", res.StatusCode())}
	}
	return f.writeFile(outputFile, res.Body())
}

func (f *Fetcher) writeFile(outputFile string, body []byte) error {
	if err := os.WriteFile(outputFile, body, 0o644); err != nil {
		return err
	}
	slog.Info("downloaded register csv",
		"file", outputFile,
		"size_mb", fmt.Sprintf("%.2f", float64(len(body))/(1024*1024)))
	return nil
}

// findDownloadURL tries selectors from most to least specific and
// returns the first href that plausibly points at the register CSV.
func findDownloadURL(doc *goquery.Document) string {
	selectors := []string{
		`a[href*="Rejestr_20874195.csv"]`,
		`a.file-download[href*="register-file"]`,
		`a[href*="register-file"][href$=".csv"]`,
		`a[download]`,
	}
	for _, selector := range selectors {
		var href string
		doc.Find(selector).EachWithBreak(func(_ int, link *goquery.Selection) bool {
			candidate, ok := link.Attr("href")
			if !ok {
				return true
			}
			if strings.Contains(strings.ToLower(candidate), "csv") ||
				strings.Contains(candidate, "register-file") {
				href = candidate
				return false
			}
			return true
		})
		if href != "" {
			return href
		}
	}
	return ""
}
