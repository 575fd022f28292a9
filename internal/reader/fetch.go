package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
)

const (
	maxRedirects = 10

	// maxBodyBytes caps how much of a page is read into memory. Output
	// is truncated far below this anyway.
	maxBodyBytes = 10 << 20
)

// fetch retrieves rawURL and returns the response body. Failures are
// classified into the package error types.
func (s *Service) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &UnexpectedError{Err: err}
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	client := &http.Client{
		Timeout: s.cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", s.classifyFetchError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Code: resp.StatusCode, Reason: statusReason(resp)}
	}

	s.log.Debug().Int("status", resp.StatusCode).Str("url", rawURL).Msg("Successfully fetched URL")

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", s.classifyFetchError(err)
	}
	return string(body), nil
}

// classifyFetchError maps transport failures onto the error taxonomy.
// Timeouts take precedence over generic network errors.
func (s *Service) classifyFetchError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{After: s.cfg.Timeout}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{After: s.cfg.Timeout}
	}
	return &TransportError{Err: err}
}

// statusReason extracts the reason phrase from the status line, falling
// back to the standard text for the code.
func statusReason(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
