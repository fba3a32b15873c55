// Package pdf turns bill and income data into PDF artifacts. Layout lives
// in HTML templates; rendering HTML to PDF is delegated to a Renderer, with
// a Chrome DevTools implementation for production and an in-memory stub for
// tests and environments without a browser.
package pdf

import "context"

// Renderer converts an HTML page into a PDF document
type Renderer interface {
	// Render returns the raw PDF bytes for the given HTML
	Render(ctx context.Context, html string) ([]byte, error)
	// Close releases any resources held by the renderer
	Close() error
}
