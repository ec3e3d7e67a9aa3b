// Package rcl scrapes the government legislative-process portal
// (legislacja.rcl.gov.pl): project detail pages over plain HTTP and the
// search form through a browser session.
package rcl

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"time"

	"horizon-monitoring/lib/restyutil"
	"horizon-monitoring/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const BaseURL = "https://legislacja.rcl.gov.pl"

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type Client struct {
	http *resty.Client
}

func NewClient(baseUrl string) (*Client, error) {
	client := resty.New()
	client.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", userAgent)
	client.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	client.SetHeader("accept-language", "pl-PL,pl;q=0.9,en-US;q=0.8,en;q=0.7")
	client.SetTimeout(time.Second * 10)

	telemetry.InstrumentResty(client, "scrapers/rcl/http")
	restyutil.InstrumentClient(client, restyInstrumentOutput)

	return &Client{http: client}, nil
}

// FetchProjectPage downloads the detail page of one tracked project.
func (c *Client) FetchProjectPage(ctx context.Context, projectID int64) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "FetchProjectPage")
	defer span.End()

	path := fmt.Sprintf("/projekt/%d", projectID)
	res, err := c.http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch project page")
		return nil, &ConnectionError{URL: path, Err: err}
	}
	if res.IsError() {
		err = fmt.Errorf("status %d", res.StatusCode())
		span.SetStatus(codes.Error, "unexpected status")
		return nil, &ConnectionError{URL: path, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, &ParseError{What: "project page", Err: err}
	}
	return doc, nil
}
