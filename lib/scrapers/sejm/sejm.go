// Package sejm scrapes legislative-process pages from the Sejm website
// (www.sejm.gov.pl): for a given print number it downloads the process
// page and extracts the chronological stage list.
package sejm

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"horizon-monitoring/lib/restyutil"
	"horizon-monitoring/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const BaseURL = "https://www.sejm.gov.pl"

const processPathTemplate = "/Sejm10.nsf/PrzebiegProc.xsp?nr=%s"

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type Client struct {
	http *resty.Client
}

func NewClient(baseUrl string) *Client {
	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetHeader("user-agent", userAgent)
	client.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	client.SetHeader("accept-language", "pl-PL,pl;q=0.9,en-US;q=0.8,en;q=0.7")
	client.SetTimeout(time.Second * 10)

	// the Sejm site intermittently drops connections, retry with
	// exponential backoff starting at 1s
	client.SetRetryCount(3)
	client.SetRetryWaitTime(time.Second)
	client.SetRetryMaxWaitTime(time.Second * 4)

	telemetry.InstrumentResty(client, "scrapers/sejm/http")
	restyutil.InstrumentClient(client, restyInstrumentOutput)

	return &Client{http: client}
}

// FetchProcessPage downloads the legislative-process page for one print
// number.
func (c *Client) FetchProcessPage(ctx context.Context, printNumber string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "FetchProcessPage")
	defer span.End()
	span.SetAttributes(attribute.String("print_number", printNumber))

	path := fmt.Sprintf(processPathTemplate, printNumber)
	res, err := c.http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch process page")
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
		return nil, &ParseError{What: "process page", Err: err}
	}
	return doc, nil
}
