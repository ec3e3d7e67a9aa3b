package sejm

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"horizon-monitoring/lib/timezone"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const processPageHTML = `
<html><body>
<ul class="proces zakladki">
  <li class="rok">2025</li>
  <li class="krok">
    <span>15 stycznia 2025</span>
    <h3>I czytanie na posiedzeniu Sejmu <a href="/Sejm10.nsf/druk.xsp?nr=123">druk 123</a></h3>
    <div>
      <p>Nr posiedzenia: <strong>5</strong></p>
      <p>Decyzja: skierowano do komisji</p>
      <p>Komentarz: bez poprawek</p>
    </div>
  </li>
  <li>
    <ul>
      <li class="poczatek">
        <span>20 lutego 2025</span>
        <h4>Praca w komisjach</h4>
        <div><p>Komisja Finansów Publicznych</p></div>
      </li>
      <li class="inne"><span>brak daty</span></li>
      <li class="koniec">
        <span>25 lutego 2025</span>
        <h3>Sprawozdanie komisji <a href="/Sejm10.nsf/druk.xsp?nr=200">druk 200</a></h3>
      </li>
    </ul>
  </li>
  <li class="krok">
    <span>10 marca 2025</span>
    <h3>III czytanie na posiedzeniu Sejmu</h3>
    <div>
      <p>Głosowanie: całość projektu</p>
      <p>Wynik: 240 za, 180 przeciw</p>
    </div>
  </li>
  <li class="krok">
    <span>data nieznana</span>
    <h3>Etap bez daty</h3>
  </li>
</ul>
</body></html>`

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, timezone.Location)
}

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseProcessStages(t *testing.T) {
	stages := ParseProcessStages(parseDoc(t, processPageHTML))
	require.Len(t, stages, 4)

	first := stages[0]
	require.Equal(t, day(2025, time.January, 15), first.Date)
	require.Equal(t, "I czytanie na posiedzeniu Sejmu druk 123", first.StageType)
	require.Equal(t, "123", first.PrintNumber)
	require.Equal(t, "5", first.SittingNumber)
	require.Equal(t, "skierowano do komisji", first.Decision)
	require.Equal(t, "bez poprawek", first.Comment)
	require.Equal(t, "Nr posiedzenia: 5 | Decyzja: skierowano do komisji | Komentarz: bez poprawek", first.Description)

	nestedStart := stages[1]
	require.Equal(t, day(2025, time.February, 20), nestedStart.Date)
	require.Equal(t, "Praca w komisjach", nestedStart.StageType)
	require.Equal(t, "Komisja Finansów Publicznych", nestedStart.Description)

	nestedEnd := stages[2]
	require.Equal(t, day(2025, time.February, 25), nestedEnd.Date)
	require.Equal(t, "200", nestedEnd.PrintNumber)

	voted := stages[3]
	require.Equal(t, day(2025, time.March, 10), voted.Date)
	require.Equal(t, "całość projektu", voted.Voting)
	require.Equal(t, "240 za, 180 przeciw", voted.VotingResult)
}

func TestParseProcessStagesNoTimeline(t *testing.T) {
	stages := ParseProcessStages(parseDoc(t, `<html><body><ul class="menu"><li>x</li></ul></body></html>`))
	require.Empty(t, stages)
}

func TestStageJSONRoundTrip(t *testing.T) {
	stage := Stage{
		Date:         day(2025, time.March, 10),
		StageType:    "III czytanie na posiedzeniu Sejmu",
		Voting:       "całość projektu",
		VotingResult: "240 za, 180 przeciw",
	}

	data, err := json.Marshal(stage)
	require.NoError(t, err)
	require.Contains(t, string(data), `"date":"2025-03-10"`)
	require.NotContains(t, string(data), "print_number")

	var decoded Stage
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, stage, decoded)
}

func TestStageJSONInvalidDate(t *testing.T) {
	var decoded Stage
	err := json.Unmarshal([]byte(`{"date":"10-03-2025","stage_type":"x"}`), &decoded)
	require.Error(t, err)
}
