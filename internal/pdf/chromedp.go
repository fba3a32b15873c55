package pdf

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

const renderTimeout = 30 * time.Second

// A4 paper in inches, portrait
const (
	paperWidth  = 8.27
	paperHeight = 11.69
)

// ChromeRenderer renders HTML to PDF over the Chrome DevTools Protocol
type ChromeRenderer struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromeRenderer creates a renderer backed by a local headless Chrome,
// or by a remote instance when remoteURL is set.
func NewChromeRenderer(remoteURL string) *ChromeRenderer {
	r := &ChromeRenderer{}
	if remoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), remoteURL)
		return r
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("font-render-hinting", "none"),
	)
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r
}

// Render returns the raw PDF bytes for the given HTML
func (r *ChromeRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	// chromedp contexts must chain from the allocator, so the deadline is
	// applied there; the caller's ctx only gates entry.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeoutCtx, cancel := context.WithTimeout(r.allocCtx, renderTimeout)
	defer cancel()
	tabCtx, tabCancel := chromedp.NewContext(timeoutCtx)
	defer tabCancel()

	start := time.Now()
	var pdfData []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		// Inject the document instead of serving it over HTTP
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				Do(ctx)
			pdfData = data
			return err
		}),
	)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"elapsed": time.Since(start).String(),
			"error":   err.Error(),
		}).Error("PDF rendering failed")
		return nil, err
	}
	return pdfData, nil
}

// Close releases the browser allocator
func (r *ChromeRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}
