// Package search runs web searches against a pluggable backend and
// renders the results as plain text.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// ModeGeneral searches the open web with the query as given.
	ModeGeneral = "general"
	// ModeDocs biases the query toward documentation sites.
	ModeDocs = "docs"

	// DefaultMaxResults applies when the caller does not ask for a count.
	DefaultMaxResults = 5

	// DefaultTimeout bounds a single backend call.
	DefaultTimeout = 30 * time.Second

	minResultsLimit = 1
	maxResultsLimit = 20

	docsQuerySuffix = " site:readthedocs.io OR site:github.com OR site:stackoverflow.com OR documentation API"

	noResultsMessage = "No results found. Try a different query or mode."
)

// Config controls the search pipeline.
type Config struct {
	// Timeout bounds a single backend call.
	Timeout time.Duration
}

// WithDefaults fills unset fields with production values.
func (c Config) WithDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Service runs search requests against a backend.
type Service struct {
	backend Backend
	cfg     Config
	log     zerolog.Logger
}

// NewService wires a backend into a search service.
func NewService(backend Backend, cfg Config, log zerolog.Logger) *Service {
	return &Service{
		backend: backend,
		cfg:     cfg.WithDefaults(),
		log:     log,
	}
}

// Search validates the request, queries the backend and renders the
// results as a text block per hit. Failures come back as typed errors;
// callers decide how to surface them.
func (s *Service) Search(ctx context.Context, query, mode string, maxResults int) (string, error) {
	s.log.Info().Str("query", query).Str("mode", mode).Int("max_results", maxResults).Msg("Search requested")

	if strings.TrimSpace(query) == "" {
		s.log.Error().Msg("Query cannot be empty")
		return "", &InvalidInputError{Reason: "Query cannot be empty"}
	}
	if mode != ModeGeneral && mode != ModeDocs {
		s.log.Error().Str("mode", mode).Msg("Invalid mode")
		return "", &InvalidInputError{Reason: fmt.Sprintf("Invalid mode '%s'. Must be 'general' or 'docs'", mode)}
	}

	maxResults = clampResults(maxResults)

	searchQuery := strings.TrimSpace(query)
	if mode == ModeDocs {
		searchQuery += docsQuerySuffix
		s.log.Debug().Str("query", searchQuery).Msg("Enhanced query for docs mode")
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	results, err := s.backend.Search(ctx, searchQuery, maxResults)
	if err != nil {
		if isTimeout(err) {
			s.log.Error().Str("query", query).Str("backend", s.backend.Name()).Msg("Search timeout")
			return "", ErrTimeout
		}
		s.log.Error().Err(err).Str("query", query).Str("backend", s.backend.Name()).Msg("Unexpected error during search")
		return "", &BackendError{Err: err}
	}

	if len(results) == 0 {
		s.log.Warn().Str("query", query).Msg("No results found")
		return noResultsMessage, nil
	}

	s.log.Info().Int("count", len(results)).Msg("Search successful")
	return formatResults(results), nil
}

// clampResults keeps the requested count inside the supported window.
func clampResults(n int) int {
	if n < minResultsLimit {
		return minResultsLimit
	}
	if n > maxResultsLimit {
		return maxResultsLimit
	}
	return n
}

// formatResults renders results as labeled blocks separated by blank
// lines. Missing fields get literal placeholders so every block keeps
// the same shape.
func formatResults(results []Result) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		title := r.Title
		if title == "" {
			title = "No title"
		}
		url := r.URL
		if url == "" {
			url = "No URL"
		}
		snippet := r.Snippet
		if snippet == "" {
			snippet = "No description"
		}
		blocks = append(blocks, fmt.Sprintf("- [Title]: %s\n  [URL]: %s\n  [Snippet]: %s", title, url, snippet))
	}
	return strings.Join(blocks, "\n\n")
}
