// Package pdf prints rendered calendars to PDF with a headless Chrome.
package pdf

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	cdppage "github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/page"
)

// Rasterizer turns an HTML document into PDF bytes.
type Rasterizer interface {
	Rasterize(ctx context.Context, html []byte, spec page.PrintSpec) ([]byte, error)
}

// ChromeRasterizer drives a headless Chrome through the DevTools protocol.
// A new browser is started for each document.
type ChromeRasterizer struct {
	// ExecPath overrides the browser binary; empty lets chromedp search for one.
	ExecPath string
	Timeout  time.Duration
}

// NewChromeRasterizer returns a rasterizer with the default timeout.
func NewChromeRasterizer(execPath string) *ChromeRasterizer {
	return &ChromeRasterizer{ExecPath: execPath, Timeout: config.PDFTimeout}
}

// Rasterize loads html into a blank tab and prints it with zero margins and
// backgrounds enabled.
func (c *ChromeRasterizer) Rasterize(ctx context.Context, html []byte, spec page.PrintSpec) ([]byte, error) {
	start := time.Now()

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var out []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(config.BlankPageURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := cdppage.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return cdppage.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := PrintParams(spec).Do(ctx)
			out = data
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRasterize, err)
	}

	slog.Debug(config.MsgPDFRendered,
		config.LogKeyComponent, config.CompPDF,
		config.LogKeyFormat, spec.Format,
		config.LogKeyLandscape, spec.Landscape,
		config.LogKeySizeBytes, len(out),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return out, nil
}

// PrintParams builds the DevTools print command for spec.
func PrintParams(spec page.PrintSpec) *cdppage.PrintToPDFParams {
	width, height := spec.PaperInches()
	return cdppage.PrintToPDF().
		WithPrintBackground(true).
		WithLandscape(spec.Landscape).
		WithPaperWidth(width).
		WithPaperHeight(height).
		WithMarginTop(0).
		WithMarginBottom(0).
		WithMarginLeft(0).
		WithMarginRight(0).
		WithPreferCSSPageSize(false)
}
