package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Source is one independent phone-information provider. Implementations own
// their timeout; the aggregator owns degradation, so a failing source never
// breaks the merged report.
type Source interface {
	Name() string
	Lookup(ctx context.Context, phone string) (string, error)
}

var errNotConfigured = errors.New("source endpoint not configured")

// httpSource queries a plain-text report endpoint with the phone number as a
// query parameter.
type httpSource struct {
	name    string
	baseURL string
	client  *http.Client
}

func newHTTPSource(name, baseURL string, timeout time.Duration) *httpSource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpSource{
		name:    name,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *httpSource) Name() string {
	return s.name
}

func (s *httpSource) Lookup(ctx context.Context, phone string) (string, error) {
	if s.baseURL == "" {
		return "", errNotConfigured
	}

	reqURL := fmt.Sprintf("%s?phone=%s", s.baseURL, url.QueryEscape(phone))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("build %s request: %w", s.name, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("query %s: %w", s.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("query %s: unexpected status %d", s.name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("read %s response: %w", s.name, err)
	}

	return fmt.Sprintf("%s: %s", s.name, strings.TrimSpace(string(body))), nil
}

// NewNomerogram builds the nomerogram caller-ID source.
func NewNomerogram(baseURL string, timeout time.Duration) Source {
	return newHTTPSource("Номерограм", baseURL, timeout)
}

// NewOlx builds the OLX classifieds source.
func NewOlx(baseURL string, timeout time.Duration) Source {
	return newHTTPSource("OLX", baseURL, timeout)
}

// NewGetcontact builds the GetContact source.
func NewGetcontact(baseURL string, timeout time.Duration) Source {
	return newHTTPSource("GetContact", baseURL, timeout)
}
