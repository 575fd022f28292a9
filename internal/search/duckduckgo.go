package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	ddgEndpoint  = "https://html.duckduckgo.com/html/"
	ddgUserAgent = "Mozilla/5.0 (compatible; NexusMCP/1.0)"

	// ddgMaxBodyBytes bounds how much of the results page is read.
	ddgMaxBodyBytes = 4 << 20
)

// DuckDuckGo scrapes the DuckDuckGo HTML endpoint. That endpoint serves
// static markup without JavaScript, which makes it a stable target for
// server-side parsing.
type DuckDuckGo struct {
	// Endpoint overrides the production URL, mainly for tests.
	Endpoint string
	// UserAgent is sent with every request.
	UserAgent string
	// Client issues the requests. Deadlines come from ctx.
	Client *http.Client
}

// NewDuckDuckGo returns a backend talking to the production endpoint.
func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		Endpoint:  ddgEndpoint,
		UserAgent: ddgUserAgent,
		Client:    &http.Client{},
	}
}

// Name implements Backend.
func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// Search implements Backend.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	endpoint := d.Endpoint
	if endpoint == "" {
		endpoint = ddgEndpoint
	}
	userAgent := d.UserAgent
	if userAgent == "" {
		userAgent = ddgUserAgent
	}
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	reqURL := endpoint + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search endpoint returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, ddgMaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	return parseResults(doc, maxResults), nil
}

// parseResults pulls organic results out of the HTML results page.
func parseResults(doc *goquery.Document, maxResults int) []Result {
	results := make([]Result, 0, maxResults)
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		target := resolveRedirect(href)
		if target == "" || strings.Contains(target, "duckduckgo.com") {
			// Sponsored entries link back through duckduckgo.com.
			return true
		}
		results = append(results, Result{
			Title:   strings.TrimSpace(link.Text()),
			URL:     target,
			Snippet: strings.TrimSpace(sel.Find(".result__snippet").Text()),
		})
		return len(results) < maxResults
	})
	return results
}

// resolveRedirect unwraps the /l/?uddg=<target> redirect links the HTML
// endpoint wraps around every organic result.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return href
	}
	return ""
}
