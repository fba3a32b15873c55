package pdf

import (
	"context"
	"errors"
	"sync"
)

// ErrRenderUnavailable is returned by a stub configured to fail
var ErrRenderUnavailable = errors.New("pdf renderer unavailable")

// StubRenderer is an in-memory Renderer for tests and browserless
// environments. It returns the HTML it was given, prefixed with a PDF
// header so downstream consumers see a plausible artifact.
type StubRenderer struct {
	mu       sync.Mutex
	Fail     bool     // When set, Render returns ErrRenderUnavailable
	Rendered []string // Every HTML document passed to Render
}

// Render returns pseudo-PDF bytes for the given HTML
func (s *StubRenderer) Render(_ context.Context, html string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return nil, ErrRenderUnavailable
	}
	s.Rendered = append(s.Rendered, html)
	return append([]byte("%PDF-1.4\n"), []byte(html)...), nil
}

// Close is a no-op
func (s *StubRenderer) Close() error { return nil }
