package pdf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/page"
	"github.com/tartampluch/go-calendar/internal/pdf"
)

func TestPrintParams(t *testing.T) {
	tests := []struct {
		name   string
		spec   page.PrintSpec
		width  float64
		height float64
	}{
		{"A4 portrait", page.PrintSpec{Format: "A4"}, 8.27, 11.69},
		{"A4 landscape", page.PrintSpec{Format: "A4", Landscape: true}, 8.27, 11.69},
		{"A5 portrait", page.PrintSpec{Format: "A5"}, 5.83, 8.27},
		{"A5 landscape", page.PrintSpec{Format: "A5", Landscape: true}, 5.83, 8.27},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pdf.PrintParams(tt.spec)

			assert.Equal(t, tt.spec.Landscape, p.Landscape)
			assert.True(t, p.PrintBackground, "Theme backgrounds must be printed")
			assert.Equal(t, tt.width, p.PaperWidth)
			assert.Equal(t, tt.height, p.PaperHeight)
			assert.Zero(t, p.MarginTop)
			assert.Zero(t, p.MarginBottom)
			assert.Zero(t, p.MarginLeft)
			assert.Zero(t, p.MarginRight)
		})
	}
}

func TestNewChromeRasterizer(t *testing.T) {
	r := pdf.NewChromeRasterizer("/usr/bin/chromium")
	assert.Equal(t, "/usr/bin/chromium", r.ExecPath)
	assert.Equal(t, config.PDFTimeout, r.Timeout)

	var _ pdf.Rasterizer = r
}
