package layout

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/markup"
	"github.com/tartampluch/go-calendar/internal/page"
)

type fortnightVariant struct{}

func (fortnightVariant) sealed()      {}
func (fortnightVariant) Kind() Kind   { return Fortnight }
func (fortnightVariant) Name() string { return "Fortnight" }

func (fortnightVariant) SupportedSizes() []page.Size {
	return []page.Size{page.A4Portrait, page.A5Portrait}
}

// Generate splits the month into days 1-15 and 16 to the end.
func (fortnightVariant) Generate(req Request) Content {
	var content FortnightContent
	last := calendar.DaysInMonth(req.Year, req.Month)
	for day := 1; day <= last; day++ {
		col := 0
		if day > config.FortnightSplitDay {
			col = 1
		}
		content.Columns[col] = append(content.Columns[col], req.cell(req.Month, day, true))
	}
	return content
}

func (fortnightVariant) StyleConfig(size page.Size) StyleConfig {
	s := sizeTable(fortnightStyles, size)
	s.Size = page.Lookup(string(size)).Size
	return s
}

func (v fortnightVariant) StyleSheet(size page.Size) string {
	return renderStyle("fortnight.css.tmpl", v.StyleConfig(size))
}

// FortnightContent holds the two columns of day cards.
type FortnightContent struct {
	Columns [2][]Cell
}

func (FortnightContent) Kind() Kind { return Fortnight }

func (c FortnightContent) Render(ctx context.Context, out io.Writer) error {
	w := markup.New(out)
	w.Open("div", "fortnights")
	for _, column := range c.Columns {
		w.Open("div", "fortnight")
		w.Open("div", "days-grid")
		for _, cell := range column {
			writeDayCard(w, cell)
		}
		w.Close("div")
		w.Close("div")
	}
	w.Close("div")
	return w.Err()
}

func writeDayCard(w *markup.Writer, c Cell) {
	w.Open("div", markup.Classes("day-card",
		templ.KV("weekend", c.Weekend),
		templ.KV("today", c.Today),
		templ.KV("has-event", c.HasEvent)))

	w.Open("div", "day-info")
	w.Element("div", "day-name", c.DayName())
	w.Element("div", "day-number", strconv.Itoa(c.Date.Day))
	w.Close("div")

	w.Open("div", "day-content")
	writeAnnotation(w, c.Annotation)
	w.Close("div")

	w.Close("div")
}
