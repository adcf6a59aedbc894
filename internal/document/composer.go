// Package document assembles a complete printable page around a layout.
package document

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/events"
	"github.com/tartampluch/go-calendar/internal/layout"
	"github.com/tartampluch/go-calendar/internal/page"
	"github.com/tartampluch/go-calendar/internal/theme"
)

// ErrInvalidMonth is returned for months outside 0-11.
var ErrInvalidMonth = errors.New(config.ErrInvalidMonth)

// ErrUnsupportedSize flags a layout rendered on a page size it was not designed for.
var ErrUnsupportedSize = errors.New(config.ErrUnsupportedSize)

// Warning reports a degraded but successful render.
type Warning struct {
	Element string
	Err     error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Element, w.Err)
}

// Composer builds documents. Nil fields fall back to the built-in themes,
// the shared event store and the wall clock.
type Composer struct {
	Themes *theme.Registry
	Events *events.Store
	Clock  calendar.Clock
}

// NewComposer wires a composer with explicit collaborators.
func NewComposer(themes *theme.Registry, store *events.Store, clock calendar.Clock) *Composer {
	return &Composer{Themes: themes, Events: store, Clock: clock}
}

// Compose lays out month (0-11) of year inside its page chrome.
func (c *Composer) Compose(month, year int, opts Options) (*Document, error) {
	if month < 0 || month >= config.MonthsPerYear {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	variant, err := layout.Get(opts.Layout)
	if err != nil {
		return nil, err
	}

	log := slog.With(config.LogKeyComponent, config.CompDocument)

	themes := c.Themes
	if themes == nil {
		themes = theme.Builtin()
	}
	store := c.Events
	if store == nil {
		store = events.Shared()
	}

	spec, known := page.Resolve(opts.PageSize)
	if !known && opts.PageSize != "" {
		log.Debug(config.MsgPageSizeFallback, config.LogKeyPageSize, opts.PageSize)
	}
	if _, ok := themes.Lookup(opts.Theme); !ok && opts.Theme != "" {
		log.Debug(config.MsgThemeFallback, config.LogKeyTheme, opts.Theme)
	}

	align := opts.LogoAlign
	if !slices.Contains(Alignments, align) {
		align = AlignRight
	}

	doc := &Document{
		Month:        month,
		Year:         year,
		Title:        fmt.Sprintf(config.FormatDocTitle, calendar.MonthName(month), year),
		Page:         spec,
		Theme:        themes.Get(opts.Theme),
		Variant:      variant,
		LogoPosition: opts.LogoPosition.Resolve(variant.Kind()),
		LogoAlign:    align,
	}

	if !layout.Supports(variant, spec.Size) {
		doc.warn(config.ElementLayout, fmt.Errorf("%w: %s on %s", ErrUnsupportedSize, variant.Kind(), spec.Size))
	}
	doc.Logo = doc.attach(config.ElementLogo, opts.Logo, LogoAsset)
	doc.Image = doc.attach(config.ElementImage, opts.Image, ImageAsset)

	doc.Content = variant.Generate(layout.Request{
		Month:  month,
		Year:   year,
		Events: store,
		Clock:  c.Clock,
	})
	doc.StyleSheet = pageStyleSheet(spec) + themes.CombinedStyleSheet() + variant.StyleSheet(spec.Size)

	for _, w := range doc.Warnings {
		log.Warn(config.MsgRenderWarning,
			config.LogKeyElement, w.Element,
			config.LogKeyError, w.Err)
	}
	return doc, nil
}

// attach returns the asset when it can be embedded, nil otherwise.
func (d *Document) attach(element string, a *Asset, kind AssetKind) *Asset {
	if a == nil {
		return nil
	}
	if err := a.usable(); err != nil {
		d.warn(element, fmt.Errorf("%s %q: %w", config.ErrAssetSkipped, a.Name, err))
		return nil
	}
	out := *a
	if out.MIME == "" {
		out.MIME = MIMEType(out.Name, kind)
	}
	return &out
}

func (d *Document) warn(element string, err error) {
	d.Warnings = append(d.Warnings, Warning{Element: element, Err: err})
}
