package document

import (
	"bytes"
	"context"
	"embed"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/layout"
	"github.com/tartampluch/go-calendar/internal/markup"
	"github.com/tartampluch/go-calendar/internal/page"
	"github.com/tartampluch/go-calendar/internal/theme"
)

//go:embed styles/page.css.tmpl
var pageFS embed.FS

var pageTemplate = template.Must(template.ParseFS(pageFS, "styles/page.css.tmpl"))

func pageStyleSheet(spec page.Spec) string {
	var b strings.Builder
	if err := pageTemplate.Execute(&b, spec); err != nil {
		panic(err)
	}
	return b.String()
}

// Document is a composed month, ready to be serialised. It implements
// templ.Component.
type Document struct {
	Month        int
	Year         int
	Title        string
	Page         page.Spec
	Theme        theme.Definition
	Variant      layout.Variant
	LogoPosition Position
	LogoAlign    Alignment
	Logo         *Asset
	Image        *Asset
	Content      layout.Content
	StyleSheet   string
	Warnings     []Warning
}

// PrintSpec returns the paper format and orientation for the rasterizer.
func (d *Document) PrintSpec() page.PrintSpec {
	return d.Page.Print()
}

// HTML serialises the document.
func (d *Document) HTML(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render writes the complete HTML page.
func (d *Document) Render(ctx context.Context, out io.Writer) error {
	w := markup.New(out)
	w.Raw("<!DOCTYPE html>\n")
	w.OpenAttrs("html", "lang", "en")
	w.Raw("<head>")
	w.OpenAttrs("meta", "charset", "UTF-8")
	w.OpenAttrs("meta", "name", "viewport", "content", "width=device-width, initial-scale=1.0")
	w.Element("title", "", d.Title)
	w.Raw("<style>\n" + d.StyleSheet + "</style>")
	w.Raw("</head><body>")

	if d.Image != nil {
		w.Open("div", "image-page")
		w.OpenAttrs("img", "src", d.Image.DataURI(), "alt", "Calendar image")
		w.Close("div")
		w.Open("div", "page-break")
		w.Close("div")
	}

	w.Open("div", strings.TrimSpace("calendar-container "+d.Theme.Class()))
	d.writeHeader(w)

	w.Open("div", "calendar-content")
	w.Render(ctx, d.Content)
	w.Close("div")

	if d.Logo != nil && d.LogoPosition == PositionFooter {
		w.Open("div", "calendar-footer logo-align-"+string(d.LogoAlign))
		w.OpenAttrs("img", "src", d.Logo.DataURI(), "alt", "Logo", "class", "footer-logo")
		w.Close("div")
	}

	w.Close("div")
	w.Raw("</body></html>\n")
	return w.Err()
}

func (d *Document) writeHeader(w *markup.Writer) {
	headerLogo := d.Logo != nil && d.LogoPosition == PositionHeader

	class := "calendar-header"
	if headerLogo {
		class += " with-logo-" + string(d.LogoAlign)
	}
	w.Open("div", class)

	if headerLogo && d.LogoAlign == AlignLeft {
		d.writeHeaderLogo(w)
	}
	w.Open("div", "calendar-header-content")
	w.Element("h1", "", calendar.MonthName(d.Month))
	w.Element("div", "year", strconv.Itoa(d.Year))
	w.Close("div")
	if headerLogo && d.LogoAlign != AlignLeft {
		d.writeHeaderLogo(w)
	}

	w.Close("div")
}

func (d *Document) writeHeaderLogo(w *markup.Writer) {
	w.OpenAttrs("img", "src", d.Logo.DataURI(), "alt", "Logo", "class", "header-logo logo-align-"+string(d.LogoAlign))
}
