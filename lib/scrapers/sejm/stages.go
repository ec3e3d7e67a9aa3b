package sejm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"horizon-monitoring/lib/dateutil"
	"horizon-monitoring/lib/htmlutil"
	"horizon-monitoring/lib/timezone"

	"github.com/PuerkitoBio/goquery"
)

// Stage is one step of the legislative process as listed on the
// PrzebiegProc page. Date and StageType are always set, the rest only
// when the page carries them.
type Stage struct {
	Date          time.Time
	StageType     string
	PrintNumber   string
	SittingNumber string
	Voting        string
	VotingResult  string
	Decision      string
	Comment       string
	Description   string
}

type stageJSON struct {
	Date          string `json:"date"`
	StageType     string `json:"stage_type"`
	PrintNumber   string `json:"print_number,omitempty"`
	SittingNumber string `json:"sitting_number,omitempty"`
	Voting        string `json:"voting,omitempty"`
	VotingResult  string `json:"voting_result,omitempty"`
	Decision      string `json:"decision,omitempty"`
	Comment       string `json:"comment,omitempty"`
	Description   string `json:"description,omitempty"`
}

func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(stageJSON{
		Date:          s.Date.In(timezone.Location).Format(dateutil.DateFormat),
		StageType:     s.StageType,
		PrintNumber:   s.PrintNumber,
		SittingNumber: s.SittingNumber,
		Voting:        s.Voting,
		VotingResult:  s.VotingResult,
		Decision:      s.Decision,
		Comment:       s.Comment,
		Description:   s.Description,
	})
}

func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw stageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, ok := dateutil.ParseISO(raw.Date)
	if !ok {
		return fmt.Errorf("invalid stage date %q", raw.Date)
	}
	*s = Stage{
		Date:          date,
		StageType:     raw.StageType,
		PrintNumber:   raw.PrintNumber,
		SittingNumber: raw.SittingNumber,
		Voting:        raw.Voting,
		VotingResult:  raw.VotingResult,
		Decision:      raw.Decision,
		Comment:       raw.Comment,
		Description:   raw.Description,
	}
	return nil
}

var printNumberPattern = regexp.MustCompile(`druk\.xsp\?nr=(\d+)`)

// Detail paragraphs are labeled with fixed Polish prefixes.
const (
	sittingNumberLabel = "Nr posiedzenia:"
	votingLabel        = "Głosowanie:"
	votingResultLabel  = "Wynik:"
	decisionLabel      = "Decyzja:"
	commentLabel       = "Komentarz:"
)

// ParseProcessStages walks the process timeline list and extracts every
// stage it can date. Top-level entries with class "krok" are main
// stages, year markers (class "rok") are skipped, and nested lists hold
// committee work with entries classed "poczatek" or "koniec". Entries
// whose date does not parse are dropped.
func ParseProcessStages(doc *goquery.Document) []Stage {
	processList := findProcessList(doc)
	if processList == nil {
		slog.Warn("no legislative process timeline found on page")
		return nil
	}

	var stages []Stage
	processList.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		if li.HasClass("rok") {
			return
		}
		if li.HasClass("krok") {
			if stage, ok := parseMainStage(li); ok {
				stages = append(stages, stage)
			}
		}
		nested := li.Find("ul").First()
		if nested.Length() > 0 {
			stages = append(stages, parseNestedStages(nested)...)
		}
	})
	return stages
}

// findProcessList returns the first ul whose class mentions "proces",
// or nil.
func findProcessList(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("ul").EachWithBreak(func(_ int, ul *goquery.Selection) bool {
		class, _ := ul.Attr("class")
		if strings.Contains(class, "proces") {
			found = ul
			return false
		}
		return true
	})
	return found
}

func parseMainStage(li *goquery.Selection) (Stage, bool) {
	dateText := htmlutil.Text(li.Find("span").First())
	date, ok := dateutil.ParsePolishDateFull(dateText)
	if !ok {
		slog.Debug("skipping stage with unparseable date", "text", dateText)
		return Stage{}, false
	}

	heading := li.Find("h3").First()
	stage := Stage{
		Date:        date,
		StageType:   htmlutil.Text(heading),
		PrintNumber: findPrintNumber(heading),
	}

	details := li.Find("div").First()
	if details.Length() > 0 {
		var texts []string
		details.Find("p").Each(func(_ int, p *goquery.Selection) {
			text := htmlutil.Text(p)
			if text == "" {
				return
			}
			texts = append(texts, text)

			switch {
			case strings.Contains(text, sittingNumberLabel):
				stage.SittingNumber = htmlutil.Text(p.Find("strong").First())
			case strings.HasPrefix(text, votingLabel):
				stage.Voting = strings.TrimSpace(strings.TrimPrefix(text, votingLabel))
			case strings.HasPrefix(text, votingResultLabel):
				stage.VotingResult = strings.TrimSpace(strings.TrimPrefix(text, votingResultLabel))
			case strings.HasPrefix(text, decisionLabel):
				stage.Decision = strings.TrimSpace(strings.TrimPrefix(text, decisionLabel))
			case strings.HasPrefix(text, commentLabel):
				stage.Comment = strings.TrimSpace(strings.TrimPrefix(text, commentLabel))
			}
		})
		stage.Description = strings.Join(texts, " | ")
	}

	return stage, true
}

func parseNestedStages(ul *goquery.Selection) []Stage {
	var stages []Stage
	ul.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		if !li.HasClass("poczatek") && !li.HasClass("koniec") {
			return
		}
		if stage, ok := parseNestedStage(li); ok {
			stages = append(stages, stage)
		}
	})
	return stages
}

// parseNestedStage handles committee-work entries. They carry less
// detail than main stages: a heading (h4, falling back to h3) and
// optionally a description.
func parseNestedStage(li *goquery.Selection) (Stage, bool) {
	date, ok := dateutil.ParsePolishDateFull(htmlutil.Text(li.Find("span").First()))
	if !ok {
		return Stage{}, false
	}

	heading := li.Find("h4").First()
	if heading.Length() == 0 {
		heading = li.Find("h3").First()
	}

	stage := Stage{
		Date:        date,
		StageType:   htmlutil.Text(heading),
		PrintNumber: findPrintNumber(heading),
	}

	details := li.Find("div").First()
	if details.Length() > 0 {
		var texts []string
		details.Find("p").Each(func(_ int, p *goquery.Selection) {
			if text := htmlutil.Text(p); text != "" {
				texts = append(texts, text)
			}
		})
		stage.Description = strings.Join(texts, " | ")
	}

	return stage, true
}

func findPrintNumber(heading *goquery.Selection) string {
	if heading.Length() == 0 {
		return ""
	}
	link := htmlutil.FindLink(heading, printNumberPattern)
	if link == nil {
		return ""
	}
	href, _ := link.Attr("href")
	match := printNumberPattern.FindStringSubmatch(href)
	if match == nil {
		return ""
	}
	return match[1]
}
