package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// ddgResult renders one organic result the way the HTML endpoint does.
func ddgResult(title, target, snippet string) string {
	href := "//duckduckgo.com/l/?uddg=" + url.QueryEscape(target) + "&amp;rut=abc123"
	return fmt.Sprintf(`<div class="result results_links web-result">
<h2 class="result__title"><a class="result__a" href="%s">%s</a></h2>
<a class="result__snippet" href="%s">%s</a>
</div>`, href, title, href, snippet)
}

func ddgPage(entries ...string) string {
	return "<html><body><div class=\"serp__results\">" + strings.Join(entries, "\n") + "</div></body></html>"
}

func newTestBackend(srv *httptest.Server) *DuckDuckGo {
	return &DuckDuckGo{Endpoint: srv.URL, Client: srv.Client()}
}

func TestDuckDuckGoParsesResults(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, ddgPage(
			ddgResult("Go Documentation", "https://go.dev/doc/", "Official Go docs"),
			ddgResult("Go Wiki", "https://go.dev/wiki/", "Community wiki"),
		))
	}))
	defer srv.Close()

	results, err := newTestBackend(srv).Search(context.Background(), "golang docs", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotQuery != "golang docs" {
		t.Errorf("endpoint received q=%q, want %q", gotQuery, "golang docs")
	}
	if gotUA != ddgUserAgent {
		t.Errorf("endpoint received User-Agent %q, want %q", gotUA, ddgUserAgent)
	}
	want := []Result{
		{Title: "Go Documentation", URL: "https://go.dev/doc/", Snippet: "Official Go docs"},
		{Title: "Go Wiki", URL: "https://go.dev/wiki/", Snippet: "Community wiki"},
	}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("result[%d] = %+v, want %+v", i, results[i], want[i])
		}
	}
}

func TestDuckDuckGoHonorsMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entries := make([]string, 0, 6)
		for i := 0; i < 6; i++ {
			entries = append(entries, ddgResult(
				fmt.Sprintf("Result %d", i),
				fmt.Sprintf("https://example.com/%d", i),
				"snippet"))
		}
		fmt.Fprint(w, ddgPage(entries...))
	}))
	defer srv.Close()

	results, err := newTestBackend(srv).Search(context.Background(), "golang", 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

func TestDuckDuckGoSkipsSponsoredLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ad := `<div class="result result--ad"><a class="result__a" href="https://duckduckgo.com/y.js?ad_provider=x">Buy now</a></div>`
		fmt.Fprint(w, ddgPage(ad, ddgResult("Organic", "https://example.com/", "real result")))
	}))
	defer srv.Close()

	results, err := newTestBackend(srv).Search(context.Background(), "golang", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Title != "Organic" {
		t.Errorf("kept result %q, want the organic one", results[0].Title)
	}
}

func TestDuckDuckGoStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestBackend(srv).Search(context.Background(), "golang", 5)
	if err == nil {
		t.Fatal("Search() returned nil error for HTTP 503")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error = %q, want it to mention the status code", err)
	}
}

func TestDuckDuckGoEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><div class=\"no-results\">No results.</div></body></html>")
	}))
	defer srv.Close()

	results, err := newTestBackend(srv).Search(context.Background(), "zzzz", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestResolveRedirect(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"uddg redirect", "//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F&rut=abc", "https://go.dev/doc/"},
		{"direct https", "https://example.com/page", "https://example.com/page"},
		{"direct http", "http://example.com/page", "http://example.com/page"},
		{"scheme-relative without uddg", "//duckduckgo.com/y.js?ad=1", ""},
		{"unparseable", "://missing-scheme", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveRedirect(tt.href); got != tt.want {
				t.Errorf("resolveRedirect(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}
