package layout

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/markup"
	"github.com/tartampluch/go-calendar/internal/page"
)

type weeklyVariant struct{}

func (weeklyVariant) sealed()      {}
func (weeklyVariant) Kind() Kind   { return Weekly }
func (weeklyVariant) Name() string { return "Weekly" }

func (weeklyVariant) SupportedSizes() []page.Size {
	return page.Sizes
}

// Generate builds one row per Sunday-first week of the month.
func (weeklyVariant) Generate(req Request) Content {
	content := WeeklyContent{Headers: calendar.DayNames()}
	for _, week := range calendar.WeeksInMonth(req.Year, req.Month) {
		var row [7]Cell
		for i, day := range week {
			row[i] = req.cell(req.Month, day, true)
		}
		content.Weeks = append(content.Weeks, row)
	}
	return content
}

func (weeklyVariant) StyleConfig(size page.Size) StyleConfig {
	s := sizeTable(weeklyStyles, size)
	s.Size = page.Lookup(string(size)).Size
	return s
}

func (v weeklyVariant) StyleSheet(size page.Size) string {
	return renderStyle("weekly.css.tmpl", v.StyleConfig(size))
}

// WeeklyContent is a header row followed by the week rows.
type WeeklyContent struct {
	Headers []string
	Weeks   [][7]Cell
}

func (WeeklyContent) Kind() Kind { return Weekly }

func (c WeeklyContent) Render(ctx context.Context, out io.Writer) error {
	w := markup.New(out)
	w.Open("div", "weekly-grid")

	w.Open("div", "week-headers")
	for _, name := range c.Headers {
		w.Element("div", "week-header", name)
	}
	w.Close("div")

	for _, week := range c.Weeks {
		w.Open("div", "week-row")
		for _, cell := range week {
			writeWeekDay(w, cell)
		}
		w.Close("div")
	}

	w.Close("div")
	return w.Err()
}

func writeWeekDay(w *markup.Writer, c Cell) {
	if c.Blank {
		w.Open("div", "week-day empty")
		w.Close("div")
		return
	}
	w.Open("div", markup.Classes("week-day",
		templ.KV("weekend", c.Weekend),
		templ.KV("today", c.Today),
		templ.KV("has-event", c.HasEvent)))
	w.Element("div", "week-day-number", strconv.Itoa(c.Date.Day))
	w.Open("div", "week-day-events")
	writeAnnotation(w, c.Annotation)
	w.Close("div")
	w.Close("div")
}
