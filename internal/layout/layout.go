// Package layout turns a month into a content tree for one of the calendar
// arrangements and serialises that tree to HTML.
package layout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/a-h/templ"
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/events"
	"github.com/tartampluch/go-calendar/internal/page"
)

// ErrUnknownLayout is returned by Lookup for names outside the closed set.
var ErrUnknownLayout = errors.New(config.ErrUnknownLayout)

// Kind enumerates the layout variants.
type Kind int

const (
	Fortnight Kind = iota
	Weekly
	Year
)

// String returns the lowercase identifier used on the command line and in the API.
func (k Kind) String() string {
	switch k {
	case Fortnight:
		return "fortnight"
	case Weekly:
		return "weekly"
	case Year:
		return "year"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Variant is one calendar arrangement. The set of variants is closed.
type Variant interface {
	Kind() Kind
	Name() string
	SupportedSizes() []page.Size
	Generate(req Request) Content
	StyleConfig(size page.Size) StyleConfig
	StyleSheet(size page.Size) string

	sealed()
}

// StyleConfig is the size-dependent dimension table of a variant.
type StyleConfig interface {
	PageSize() page.Size
}

// Content is the generated tree of a variant. Rendering it is the only
// place where markup is produced.
type Content interface {
	templ.Component
	Kind() Kind
}

var variants = []Variant{
	Fortnight: fortnightVariant{},
	Weekly:    weeklyVariant{},
	Year:      yearVariant{},
}

// Get returns the variant of k.
func Get(k Kind) (Variant, error) {
	if k < 0 || int(k) >= len(variants) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLayout, k)
	}
	return variants[k], nil
}

// Lookup resolves a lowercase layout name.
func Lookup(name string) (Variant, error) {
	for _, v := range variants {
		if v.Kind().String() == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownLayout, name, strings.Join(Names(), ", "))
}

// Names lists the layout identifiers.
func Names() []string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Kind().String()
	}
	return names
}

// Supports reports whether v was designed for size.
func Supports(v Variant, size page.Size) bool {
	return slices.Contains(v.SupportedSizes(), size)
}

// HTML renders content into a byte slice.
func HTML(ctx context.Context, c Content) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Request is the input of Variant.Generate. A nil store renders a calendar
// without annotations; a nil clock uses the wall clock.
type Request struct {
	Month  int
	Year   int
	Events *events.Store
	Clock  calendar.Clock
}

// Cell is one rendered day. Blank cells pad the first and last week rows.
type Cell struct {
	Date       calendar.Date
	Blank      bool
	Weekend    bool
	Today      bool
	HasEvent   bool
	Annotation *events.Annotation
}

// DayName returns the three-letter weekday of the cell.
func (c Cell) DayName() string {
	return calendar.DayName(c.Date.Weekday())
}

// cell computes the visual state of a day. Annotation text is resolved only
// when withText is set.
func (r Request) cell(month, day int, withText bool) Cell {
	if day == 0 {
		return Cell{Blank: true}
	}
	d := calendar.Date{Year: r.Year, Month: month, Day: day}
	c := Cell{
		Date:    d,
		Weekend: d.IsWeekend(),
		Today:   calendar.IsToday(r.Clock, d),
	}
	if r.Events == nil {
		return c
	}

	key := d.Key()
	if !withText {
		c.HasEvent = r.Events.Has(key)
		return c
	}
	if ann, ok := r.Events.Render(key, r.Year); ok {
		c.HasEvent = true
		c.Annotation = &ann
	}
	return c
}

// sizeTable picks the entry of size, falling back to A4 portrait.
func sizeTable[T any](table map[page.Size]T, size page.Size) T {
	if v, ok := table[size]; ok {
		return v
	}
	return table[page.A4Portrait]
}
