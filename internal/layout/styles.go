package layout

import (
	"embed"
	"strings"
	"text/template"

	"github.com/tartampluch/go-calendar/internal/page"
)

//go:embed styles/*.css.tmpl
var styleFS embed.FS

var styleTemplates = template.Must(template.ParseFS(styleFS, "styles/*.css.tmpl"))

// FortnightStyle sizes the day cards of the fortnight layout.
type FortnightStyle struct {
	Size          page.Size
	CardHeight    string
	CardPadding   string
	DayNameSize   string
	DayNumberSize string
	EventSize     string
	EventMinWidth string
	Gap           string
}

func (s FortnightStyle) PageSize() page.Size { return s.Size }

// WeeklyStyle sizes the cells of the weekly grid.
type WeeklyStyle struct {
	Size         page.Size
	CellHeight   string
	FontSize     string
	DayNumSize   string
	EventPadding string
	HeaderSize   string
}

func (s WeeklyStyle) PageSize() page.Size { return s.Size }

// YearStyle sizes the mini months of the year overview.
type YearStyle struct {
	Size          page.Size
	MonthPadding  string
	HeaderSize    string
	DayHeaderSize string
	DaySize       string
	CellSize      string
	HeaderMargin  string
	Columns       int
	Rows          int
}

func (s YearStyle) PageSize() page.Size { return s.Size }

var fortnightStyles = map[page.Size]FortnightStyle{
	page.A4Portrait: {
		CardHeight: "48px", CardPadding: "8px 12px", DayNameSize: "11px",
		DayNumberSize: "22px", EventSize: "11px", EventMinWidth: "190px", Gap: "2px",
	},
	page.A5Portrait: {
		CardHeight: "30px", CardPadding: "4px 8px", DayNameSize: "8px",
		DayNumberSize: "15px", EventSize: "8px", EventMinWidth: "120px", Gap: "1px",
	},
}

var weeklyStyles = map[page.Size]WeeklyStyle{
	page.A4Portrait:  {CellHeight: "80px", FontSize: "10px", DayNumSize: "18px", EventPadding: "4px", HeaderSize: "12px"},
	page.A4Landscape: {CellHeight: "100px", FontSize: "11px", DayNumSize: "20px", EventPadding: "6px", HeaderSize: "13px"},
	page.A5Portrait:  {CellHeight: "50px", FontSize: "8px", DayNumSize: "14px", EventPadding: "2px", HeaderSize: "10px"},
	page.A5Landscape: {CellHeight: "42px", FontSize: "7px", DayNumSize: "12px", EventPadding: "2px", HeaderSize: "9px"},
}

var yearStyles = map[page.Size]YearStyle{
	page.A4Portrait:  {MonthPadding: "8px", HeaderSize: "14px", DayHeaderSize: "9px", DaySize: "11px", CellSize: "22px", HeaderMargin: "6px"},
	page.A4Landscape: {MonthPadding: "6px", HeaderSize: "13px", DayHeaderSize: "8px", DaySize: "10px", CellSize: "20px", HeaderMargin: "5px"},
	page.A5Portrait:  {MonthPadding: "4px", HeaderSize: "11px", DayHeaderSize: "7px", DaySize: "9px", CellSize: "16px", HeaderMargin: "4px"},
	page.A5Landscape: {MonthPadding: "3px", HeaderSize: "10px", DayHeaderSize: "6px", DaySize: "8px", CellSize: "14px", HeaderMargin: "3px"},
}

// renderStyle executes a style template. The templates only reference
// fields of the style structs, so execution cannot fail at runtime.
func renderStyle(name string, data any) string {
	var b strings.Builder
	if err := styleTemplates.ExecuteTemplate(&b, name, data); err != nil {
		panic(err)
	}
	return b.String()
}
