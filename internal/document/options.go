package document

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/layout"
	"github.com/tartampluch/go-calendar/internal/page"
)

// Position places the logo.
type Position string

const (
	PositionHeader Position = "header"
	PositionFooter Position = "footer"
	PositionAuto   Position = "auto"
)

// Positions lists the accepted logo positions.
var Positions = []Position{PositionAuto, PositionHeader, PositionFooter}

// Alignment aligns the logo inside its row.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Alignments lists the accepted logo alignments.
var Alignments = []Alignment{AlignLeft, AlignCenter, AlignRight}

// ParsePosition validates a user supplied logo position. Empty means auto.
func ParsePosition(s string) (Position, error) {
	p := Position(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PositionAuto, nil
	}
	if !slices.Contains(Positions, p) {
		return "", fmt.Errorf("%s: %q", config.ErrLogoPosition, s)
	}
	return p, nil
}

// ParseAlignment validates a user supplied logo alignment. Empty means right.
func ParseAlignment(s string) (Alignment, error) {
	a := Alignment(strings.ToLower(strings.TrimSpace(s)))
	if a == "" {
		return AlignRight, nil
	}
	if !slices.Contains(Alignments, a) {
		return "", fmt.Errorf("%s: %q", config.ErrLogoAlign, s)
	}
	return a, nil
}

// Resolve turns auto into the footer for the year overview and into the
// header for every other layout.
func (p Position) Resolve(k layout.Kind) Position {
	switch p {
	case PositionHeader, PositionFooter:
		return p
	}
	if k == layout.Year {
		return PositionFooter
	}
	return PositionHeader
}

// Options selects how a month is rendered.
type Options struct {
	Theme        string
	Layout       layout.Kind
	PageSize     string
	Image        *Asset
	Logo         *Asset
	LogoPosition Position
	LogoAlign    Alignment
}

// DefaultOptions mirrors the command line defaults.
func DefaultOptions() Options {
	return Options{
		Theme:        config.DefaultTheme,
		Layout:       layout.Fortnight,
		PageSize:     string(page.A4Portrait),
		LogoPosition: PositionAuto,
		LogoAlign:    AlignRight,
	}
}
