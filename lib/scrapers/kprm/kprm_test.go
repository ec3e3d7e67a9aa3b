package kprm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"horizon-monitoring/lib/browser"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const registerCSV = "Lp.;Tytuł projektu;Numer projektu\n1;Projekt ustawy;UD100\n"

func TestDownloadDirect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/register-file/test.csv" {
			w.Write([]byte(registerCSV))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.URL+"/web/premier/wplip-rm", server.URL+"/register-file/test.csv")
	outputFile := filepath.Join(t.TempDir(), "register.csv")

	require.NoError(t, fetcher.Download(context.Background(), outputFile))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	require.Equal(t, registerCSV, string(data))
}

type fakeSession struct {
	html string
}

func (f *fakeSession) Navigate(ctx context.Context, url string) error { return nil }

func (f *fakeSession) FillField(ctx context.Context, selector, value string) error { return nil }

func (f *fakeSession) Click(ctx context.Context, selector string) error { return nil }

func (f *fakeSession) Content(ctx context.Context) (string, error) { return f.html, nil }

func (f *fakeSession) Close() error { return nil }

func TestDownloadFallsBackToPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/register-file/direct.csv":
			http.Error(w, "gone", http.StatusNotFound)
		case "/register-file/linked.csv":
			w.Write([]byte(registerCSV))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	fetcher := NewFetcher(server.URL+"/web/premier/wplip-rm", server.URL+"/register-file/direct.csv")
	fetcher.NewSession = func(opts browser.Options) (browser.Session, error) {
		return &fakeSession{
			html: `<html><body><a class="file-download" href="` +
				server.URL + `/register-file/linked.csv">Pobierz dane do pliku</a></body></html>`,
		}, nil
	}

	outputFile := filepath.Join(t.TempDir(), "register.csv")
	require.NoError(t, fetcher.Download(context.Background(), outputFile))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	require.Equal(t, registerCSV, string(data))
}

func TestFindDownloadURL(t *testing.T) {
	for _, test := range []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "canonical file name",
			html:     `<a href="/register-file/Rejestr_20874195.csv">csv</a>`,
			expected: "/register-file/Rejestr_20874195.csv",
		},
		{
			name:     "download attribute",
			html:     `<a download href="/files/rejestr.CSV">plik</a>`,
			expected: "/files/rejestr.CSV",
		},
		{
			name:     "link without csv href ignored",
			html:     `<a download href="/files/rejestr.pdf">plik</a>`,
			expected: "",
		},
		{
			name:     "no links",
			html:     `<p>brak</p>`,
			expected: "",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body>` + test.html + `</body></html>`))
			require.NoError(t, err)
			require.Equal(t, test.expected, findDownloadURL(doc))
		})
	}
}
