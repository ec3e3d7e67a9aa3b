package rcl

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"horizon-monitoring/lib/browser"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Search form tabs: tab1 searches by subject tag, tab2 by external
// identifiers (UE act number, KPRM register number).
const (
	TagSearchTab   = "tab1"
	QuerySearchTab = "tab2"
)

const (
	ueActFieldSelector  = "input#UEActValue"
	numberFieldSelector = "input#number"
	submitSelector      = "button[type=submit], input[type=submit]"
)

// SearchSession wraps one exclusively owned browser session pointed at
// the portal's search form. The underlying form keeps its state between
// queries, so ClearForm must run between two dependent searches.
type SearchSession struct {
	session   browser.Session
	baseUrl   string
	activeTab string
}

func NewSearchSession(session browser.Session, baseUrl, activeTab string) *SearchSession {
	return &SearchSession{session: session, baseUrl: baseUrl, activeTab: activeTab}
}

// Open loads the search page with a clean form.
func (s *SearchSession) Open(ctx context.Context) error {
	searchUrl := fmt.Sprintf("%s/szukaj?activeTab=%s", s.baseUrl, s.activeTab)
	if err := s.session.Navigate(ctx, searchUrl); err != nil {
		return &ConnectionError{URL: searchUrl, Err: err}
	}
	return nil
}

// ClearForm resets the search form by reloading it. Reloading beats
// hunting for the "Wyczyść" link, which is not always visible.
func (s *SearchSession) ClearForm(ctx context.Context) error {
	searchUrl := fmt.Sprintf("%s/szukaj?activeTab=%s#list", s.baseUrl, s.activeTab)
	if err := s.session.Navigate(ctx, searchUrl); err != nil {
		return &ConnectionError{URL: searchUrl, Err: err}
	}
	return nil
}

// SearchByTag opens the results list for one subject tag. All filter
// parameters ride along in the URL, so no form interaction is needed.
func (s *SearchSession) SearchByTag(ctx context.Context, tagID int64, start, end time.Time) ([]SearchResult, error) {
	ctx, span := tracer.Start(ctx, "SearchByTag")
	defer span.End()
	span.SetAttributes(attribute.Int64("tag_id", tagID))

	searchUrl := s.tagSearchUrl(tagID)
	if err := s.session.Navigate(ctx, searchUrl); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open tag search")
		return nil, &ConnectionError{URL: searchUrl, Err: err}
	}

	return s.parseResults(ctx, start, end)
}

// SearchByUEAct fills the UE act number field and submits. The form is
// assumed clean; call ClearForm after any previous query.
func (s *SearchSession) SearchByUEAct(ctx context.Context, ueActNumber string, start, end time.Time) ([]SearchResult, error) {
	ctx, span := tracer.Start(ctx, "SearchByUEAct")
	defer span.End()
	span.SetAttributes(attribute.String("ue_act_number", ueActNumber))

	return s.submitQuery(ctx, ueActFieldSelector, ueActNumber, start, end)
}

// SearchByKPRMNumber fills the registry number field and submits. The
// form is assumed clean; call ClearForm after any previous query.
func (s *SearchSession) SearchByKPRMNumber(ctx context.Context, kprmNumber string, start, end time.Time) ([]SearchResult, error) {
	ctx, span := tracer.Start(ctx, "SearchByKPRMNumber")
	defer span.End()
	span.SetAttributes(attribute.String("kprm_number", kprmNumber))

	return s.submitQuery(ctx, numberFieldSelector, kprmNumber, start, end)
}

func (s *SearchSession) submitQuery(ctx context.Context, fieldSelector, value string, start, end time.Time) ([]SearchResult, error) {
	if err := s.session.FillField(ctx, fieldSelector, value); err != nil {
		return nil, &ConnectionError{URL: s.baseUrl, Err: err}
	}
	if err := s.session.Click(ctx, submitSelector); err != nil {
		return nil, &ConnectionError{URL: s.baseUrl, Err: err}
	}
	return s.parseResults(ctx, start, end)
}

func (s *SearchSession) parseResults(ctx context.Context, start, end time.Time) ([]SearchResult, error) {
	html, err := s.session.Content(ctx)
	if err != nil {
		return nil, &ConnectionError{URL: s.baseUrl, Err: err}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{What: "search results", Err: err}
	}
	return ParseSearchResults(doc, start, end), nil
}

// tagSearchUrl reproduces the full filter form as URL parameters with
// only the subject tag set, sorted by modification date descending.
func (s *SearchSession) tagSearchUrl(tagID int64) string {
	params := url.Values{
		"_typeId":                 {"1"},
		"progress":                {""},
		"status":                  {""},
		"tenure":                  {""},
		"createDateFrom":          {""},
		"createDateTo":            {""},
		"title":                   {""},
		"_keywordId":              {"1"},
		"applicantId":             {""},
		"periodId":                {""},
		"_deptId":                 {"1"},
		"wordkeyId":               {strconv.FormatInt(tagID, 10)},
		"_wordkeyId":              {"1"},
		"amended":                 {""},
		"repealed":                {""},
		"topic":                   {""},
		"number":                  {""},
		"_isUEAct":                {"on"},
		"_isActEstablishingNumber": {"on"},
		"_isTKAct":                {"on"},
		"_isSeparateMode":         {"on"},
		"_isDU":                   {"on"},
		"_isNumerSejm":            {"on"},
		"activeTab":               {TagSearchTab},
		"sKey":                    {"modifiedDate"},
		"sOrder":                  {"desc"},
	}
	return fmt.Sprintf("%s/szukaj?%s#list", s.baseUrl, params.Encode())
}
