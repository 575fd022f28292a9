// Package reader fetches web pages and extracts their content with a
// selectable focus.
package reader

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const (
	// FocusAuto switches to code on documentation-looking URLs.
	FocusAuto = "auto"
	// FocusGeneral flattens the whole page to clean article text.
	FocusGeneral = "general"
	// FocusCode keeps only headers, code blocks, and tables.
	FocusCode = "code"

	// DefaultUserAgent identifies the reader to origin servers.
	DefaultUserAgent = "NexusMCP/1.0"
	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 15 * time.Second
	// DefaultMaxContentLength caps returned text, in characters.
	DefaultMaxContentLength = 8000
	// DefaultMinElements is the element floor below which the code focus
	// reports minimal content instead of a result.
	DefaultMinElements = 5

	tableRowLimit = 10
)

// technicalIndicators mark URLs that very likely serve documentation.
var technicalIndicators = []string{"docs", "api", "reference", "github", "guide", "documentation"}

// Config controls the read pipeline.
type Config struct {
	// Timeout bounds a single page fetch.
	Timeout time.Duration
	// UserAgent is sent with every fetch.
	UserAgent string
	// MaxContentLength caps returned text, in characters.
	MaxContentLength int
	// MinElements is the element floor for the code focus.
	MinElements int
}

// WithDefaults fills unset fields with production values.
func (c Config) WithDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.MaxContentLength <= 0 {
		c.MaxContentLength = DefaultMaxContentLength
	}
	if c.MinElements <= 0 {
		c.MinElements = DefaultMinElements
	}
	return c
}

// Service fetches pages and extracts their content.
type Service struct {
	cfg Config
	log zerolog.Logger
}

// NewService returns a reader with cfg's gaps filled by defaults.
func NewService(cfg Config, log zerolog.Logger) *Service {
	return &Service{cfg: cfg.WithDefaults(), log: log}
}

// Read fetches rawURL and returns its content shaped by focus. Failures
// come back as typed errors; callers decide how to surface them.
func (s *Service) Read(ctx context.Context, rawURL, focus string) (string, error) {
	s.log.Info().Str("url", rawURL).Str("focus", focus).Msg("Read requested")

	if strings.TrimSpace(rawURL) == "" {
		s.log.Error().Msg("URL cannot be empty")
		return "", &InvalidInputError{Reason: "URL cannot be empty"}
	}
	if focus != FocusAuto && focus != FocusGeneral && focus != FocusCode {
		s.log.Error().Str("focus", focus).Msg("Invalid focus")
		return "", &InvalidInputError{Reason: fmt.Sprintf("Invalid focus '%s'. Must be 'auto', 'general', or 'code'", focus)}
	}

	rawURL = strings.TrimSpace(rawURL)

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		s.log.Error().Str("url", rawURL).Msg("URL must start with http:// or https://")
		return "", &InvalidInputError{Reason: "URL must start with http:// or https://"}
	}

	if focus == FocusAuto {
		focus = detectFocus(rawURL)
		if focus == FocusCode {
			s.log.Debug().Msg("Auto-detected technical site, switching to code focus")
		} else {
			s.log.Debug().Msg("Auto-detected general site, using general focus")
		}
	}

	body, err := s.fetch(ctx, rawURL)
	if err != nil {
		s.log.Error().Err(err).Str("url", rawURL).Msg("Read failed")
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		wrapped := &UnexpectedError{Err: err}
		s.log.Error().Err(wrapped).Str("url", rawURL).Msg("Read failed")
		return "", wrapped
	}
	stripJunk(doc)

	output := []string{
		fmt.Sprintf("=== SOURCE: %s ===", rawURL),
		fmt.Sprintf("=== MODE: %s ===\n", strings.ToUpper(focus)),
	}

	if focus == FocusCode {
		output = append(output, renderCode(collectFragments(doc, s.log))...)
		if len(output) < s.cfg.MinElements {
			s.log.Warn().Int("elements", len(output)).Str("url", rawURL).Msg("Insufficient code elements found")
			return fmt.Sprintf("Code-focused extraction found minimal content (%d elements). The page may not contain structured documentation. Try focus='general' for better results.", len(output)), nil
		}
	} else {
		output = append(output, flattenText(doc))
	}

	return s.capContent(output, rawURL), nil
}

// detectFocus chooses a focus from URL shape alone. Documentation hosts
// and paths usually advertise themselves in the URL.
func detectFocus(rawURL string) string {
	lower := strings.ToLower(rawURL)
	for _, indicator := range technicalIndicators {
		if strings.Contains(lower, indicator) {
			return FocusCode
		}
	}
	return FocusGeneral
}

// capContent joins output, enforces the character cap, and appends the
// truncation notice when anything was cut.
func (s *Service) capContent(output []string, rawURL string) string {
	joined := strings.Join(output, "\n")
	runes := []rune(joined)

	chars := len(runes)
	result := joined
	if chars > s.cfg.MaxContentLength {
		chars = s.cfg.MaxContentLength
		result = string(runes[:chars])
	}
	s.log.Info().Int("chars", chars).Str("url", rawURL).Msg("Read successful")

	if len(runes) > s.cfg.MaxContentLength {
		result += fmt.Sprintf("\n\n[Content truncated at %d characters]", s.cfg.MaxContentLength)
		s.log.Debug().Str("url", rawURL).Msg("Content truncated")
	}
	return result
}
