package page

import (
	"slices"
	"strconv"
)

// Size identifies one of the supported page sizes.
type Size string

const (
	A4Portrait  Size = "A4-portrait"
	A4Landscape Size = "A4-landscape"
	A5Portrait  Size = "A5-portrait"
	A5Landscape Size = "A5-landscape"
)

// Sizes lists the supported sizes; the first one is the fallback.
var Sizes = []Size{A4Portrait, A4Landscape, A5Portrait, A5Landscape}

// Paper formats understood by the rasterizer.
const (
	FormatA4 = "A4"
	FormatA5 = "A5"
)

// Spec describes the physical page a document is laid out on.
type Spec struct {
	Size      Size
	Width     float64 // millimetres
	Height    float64 // millimetres
	Format    string
	Landscape bool
}

var specs = map[Size]Spec{
	A4Portrait:  {Size: A4Portrait, Width: 210, Height: 297, Format: FormatA4},
	A4Landscape: {Size: A4Landscape, Width: 297, Height: 210, Format: FormatA4, Landscape: true},
	A5Portrait:  {Size: A5Portrait, Width: 148, Height: 210, Format: FormatA5},
	A5Landscape: {Size: A5Landscape, Width: 210, Height: 148, Format: FormatA5, Landscape: true},
}

// Resolve returns the spec of id and whether id is a supported size.
func Resolve(id string) (Spec, bool) {
	s, ok := specs[Size(id)]
	if !ok {
		return specs[A4Portrait], false
	}
	return s, true
}

// Lookup returns the spec of id, falling back to A4 portrait.
func Lookup(id string) Spec {
	s, _ := Resolve(id)
	return s
}

// Valid reports whether s is a supported size.
func (s Size) Valid() bool {
	return slices.Contains(Sizes, s)
}

// Landscape reports whether s is a landscape orientation.
func (s Size) Landscape() bool {
	return Lookup(string(s)).Landscape
}

// CSSWidth returns the page width as a CSS length.
func (s Spec) CSSWidth() string {
	return strconv.FormatFloat(s.Width, 'f', -1, 64) + "mm"
}

// CSSHeight returns the page height as a CSS length.
func (s Spec) CSSHeight() string {
	return strconv.FormatFloat(s.Height, 'f', -1, 64) + "mm"
}

// PrintSpec is what a rasterizer needs to paginate a document.
type PrintSpec struct {
	Format    string
	Landscape bool
}

// Print returns the rasterizer contract of the page.
func (s Spec) Print() PrintSpec {
	return PrintSpec{Format: s.Format, Landscape: s.Landscape}
}

// PaperInches returns the portrait paper dimensions of the format in inches.
// Unknown formats are treated as A4.
func (p PrintSpec) PaperInches() (width, height float64) {
	if p.Format == FormatA5 {
		return 5.83, 8.27
	}
	return 8.27, 11.69
}
