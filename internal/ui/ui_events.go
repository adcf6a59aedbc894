package ui

import (
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/events"
)

// eventRow is one line of the events table, rendered for a given year.
type eventRow struct {
	Key      string
	Category events.Category
	Title    string
}

// eventRows renders every entry of store for year.
func eventRows(store *events.Store, year int) []eventRow {
	if store == nil {
		return nil
	}
	keys := store.Keys()
	rows := make([]eventRow, 0, len(keys))
	for _, key := range keys {
		ann, ok := store.Render(key, year)
		if !ok {
			continue
		}
		rows = append(rows, eventRow{Key: key, Category: ann.Category, Title: ann.Title()})
	}
	return rows
}

// sortRows orders rows by column col. Ties fall back to the date key.
func sortRows(rows []eventRow, col int, asc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool
		switch col {
		case config.ColIDCategory:
			if a.Category == b.Category {
				less = a.Key < b.Key
			} else {
				less = a.Category < b.Category
			}
		case config.ColIDTitle:
			ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if ta == tb {
				less = a.Key < b.Key
			} else {
				less = ta < tb
			}
		default:
			less = a.Key < b.Key
		}
		if !asc {
			return !less
		}
		return less
	})
}

// ShowEventsWindow lists the loaded events as they render this year.
func (app *CalendarApp) ShowEventsWindow() {
	if app.eventsWindow != nil {
		app.eventsWindow.RequestFocus()
		return
	}

	year := calendar.OrReal(app.Clock).Now().Year()
	rows := eventRows(app.Events, year)

	app.eventsWindow = app.App.NewWindow(app.GetMsgData(config.TKeyWinEvents, map[string]any{"Year": year}))
	app.eventsWindow.Resize(fyne.NewSize(config.EventsWinWidth, config.EventsWinHeight))

	slog.Info(config.MsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyWindow, config.WindowEvents,
		config.LogKeyCount, len(rows))

	sortCol := config.ColIDDate
	sortAsc := true
	sortRows(rows, sortCol, sortAsc)

	table := widget.NewTable(
		func() (int, int) {
			return len(rows), config.EventColumns
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(rows) {
				return
			}
			r := rows[id.Row]
			switch id.Col {
			case config.ColIDDate:
				label.SetText(r.Key)
			case config.ColIDCategory:
				label.SetText(app.GetMsg(config.TKeyCategoryPrefix + string(r.Category)))
			case config.ColIDTitle:
				label.SetText(r.Title)
			}
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton(config.TablePlaceholder, func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		var titleKey string
		switch id.Col {
		case config.ColIDDate:
			titleKey = config.TKeyColDate
		case config.ColIDCategory:
			titleKey = config.TKeyColCategory
		case config.ColIDTitle:
			titleKey = config.TKeyColTitle
		}

		text := app.GetMsg(titleKey)
		if id.Col == sortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if sortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				sortCol = id.Col
				sortAsc = true
			}
			sortRows(rows, sortCol, sortAsc)
			table.Refresh()
		}
	}

	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDCategory, config.ColWidthCategory)
	table.SetColumnWidth(config.ColIDTitle, config.ColWidthTitle)

	app.eventsWindow.SetContent(container.NewBorder(nil, nil, nil, nil, table))
	app.eventsWindow.SetOnClosed(func() {
		app.eventsWindow = nil
	})
	app.eventsWindow.Show()
}
