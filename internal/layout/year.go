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

type yearVariant struct{}

func (yearVariant) sealed()      {}
func (yearVariant) Kind() Kind   { return Year }
func (yearVariant) Name() string { return "Year" }

func (yearVariant) SupportedSizes() []page.Size {
	return page.Sizes
}

// Generate builds the twelve mini months of the request year. The month of
// the request is ignored; annotations only mark days, their text is never shown.
func (yearVariant) Generate(req Request) Content {
	var content YearContent
	for month := range content.Months {
		mini := MiniMonth{Month: month, Name: calendar.MonthName(month)}
		for _, week := range calendar.WeeksInMonth(req.Year, month) {
			var row [7]Cell
			for i, day := range week {
				row[i] = req.cell(month, day, false)
			}
			mini.Weeks = append(mini.Weeks, row)
		}
		content.Months[month] = mini
	}
	return content
}

func (yearVariant) StyleConfig(size page.Size) StyleConfig {
	s := sizeTable(yearStyles, size)
	s.Size = page.Lookup(string(size)).Size
	s.Columns, s.Rows = config.YearGridWide, config.YearGridNarrow
	if !page.Lookup(string(size)).Landscape {
		s.Columns, s.Rows = config.YearGridNarrow, config.YearGridWide
	}
	return s
}

func (v yearVariant) StyleSheet(size page.Size) string {
	return renderStyle("year.css.tmpl", v.StyleConfig(size))
}

// MiniMonth is a compact month grid of the year overview.
type MiniMonth struct {
	Month int
	Name  string
	Weeks [][7]Cell
}

// YearContent holds the twelve months of a year.
type YearContent struct {
	Months [config.MonthsPerYear]MiniMonth
}

func (YearContent) Kind() Kind { return Year }

func (c YearContent) Render(ctx context.Context, out io.Writer) error {
	w := markup.New(out)
	w.Open("div", "year-grid")
	for _, m := range c.Months {
		w.Open("div", "mini-month")
		w.Element("div", "mini-month-header", m.Name)
		w.Open("div", "mini-grid")

		w.Open("div", "mini-day-headers")
		for _, initial := range calendar.DayInitials() {
			w.Element("div", "mini-day-header", initial)
		}
		w.Close("div")

		w.Open("div", "mini-weeks")
		for _, week := range m.Weeks {
			w.Open("div", "mini-week")
			for _, cell := range week {
				writeMiniDay(w, cell)
			}
			w.Close("div")
		}
		w.Close("div")

		w.Close("div")
		w.Close("div")
	}
	w.Close("div")
	return w.Err()
}

func writeMiniDay(w *markup.Writer, c Cell) {
	if c.Blank {
		w.Open("div", "mini-day empty")
		w.Close("div")
		return
	}
	w.Element("div", markup.Classes("mini-day",
		templ.KV("weekend", c.Weekend),
		templ.KV("today", c.Today),
		templ.KV("has-event", c.HasEvent)), strconv.Itoa(c.Date.Day))
}
