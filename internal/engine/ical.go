package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/events"
)

// ICSExporter publishes the annotations of a store as all-day iCalendar events.
type ICSExporter struct {
	Clock calendar.Clock
}

// Export writes one VEVENT per annotation of year to w and returns the
// number of events. Dates that do not exist in year (February 29th outside
// leap years) are skipped.
func (e *ICSExporter) Export(store *events.Store, year int, w io.Writer) (int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(calendar.OrReal(e.Clock).Now().UTC())

	for _, key := range store.Keys() {
		month, day, err := calendar.ParseKey(key)
		if err != nil {
			continue
		}
		date := calendar.Date{Year: year, Month: month, Day: day}
		if !date.Valid() {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompExport,
				config.LogKeyKey, key,
				config.LogKeyYear, year)
			continue
		}

		ann, _ := store.Render(key, year)
		lines := ann.VisibleLines()
		if len(lines) == 0 {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, eventUID(key, year))
		event.Props.Set(dtStamp)
		event.Props.SetText(config.PropSummary, lines[0])
		if len(lines) > 1 {
			event.Props.SetText(config.PropDescription, strings.Join(lines[1:], "\n"))
		}
		event.Props.SetText(config.PropCategories, string(ann.Category))

		dtStart := ical.NewProp(config.PropDTStart)
		dtStart.SetDate(date.Time(time.UTC))
		event.Props.Set(dtStart)

		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		// An empty year still yields a valid VCALENDAR.
		_, err := io.WriteString(w, config.StubVCalendar)
		return 0, err
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return 0, err
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompExport,
		config.LogKeyYear, year,
		config.LogKeyCount, len(cal.Children))
	return len(cal.Children), nil
}

func eventUID(key string, year int) string {
	hash := sha256.Sum256([]byte(config.UIDSalt + key))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), year, config.ICalDomain)
}
