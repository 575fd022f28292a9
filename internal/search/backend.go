package search

import "context"

// Result is a single entry returned by a search backend.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Backend performs the actual web search. Implementations must honor ctx
// cancellation and return at most maxResults entries.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string

	// Search returns results for query in ranking order.
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}
