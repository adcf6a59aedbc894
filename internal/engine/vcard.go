package engine

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/events"
)

// ImportVCards converts the BDAY and ANNIVERSARY fields of an address book
// into birthday and anniversary records. When two dates share a key the
// first one wins and the other is reported as a duplicate.
func ImportVCards(ctx context.Context, r io.Reader) (*Imported, error) {
	out := &Imported{Records: make(map[string]events.Record)}
	decoder := vcard.NewDecoder(r)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken card must not prevent importing the others.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompImport,
				config.LogKeyError, err)
			out.Stats.Skipped++
			continue
		}
		out.Stats.Cards++

		name := cardName(card)
		out.add(name, card.Get(config.VCardBDAY), events.Birthday, config.FormatVCardBirthday)
		out.add(name, card.Get(config.VCardAnniversary), events.Anniversary, config.FormatVCardAnniversary)
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompImport,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, out.Stats.Cards),
			slog.Int(config.LogKeyFound, out.Stats.Dates),
			slog.Int(config.LogKeyDuplicates, out.Stats.Duplicates),
			slog.Int(config.LogKeySkipped, out.Stats.Skipped),
		),
	)
	return out, nil
}

// add records one dated field of a card.
func (im *Imported) add(name string, field *vcard.Field, category events.Category, format string) {
	if field == nil || field.Value == "" {
		return
	}
	date, yearKnown, err := parseDate(field.Value)
	if err != nil {
		slog.Debug(config.MsgSkippedDate,
			config.LogKeyComponent, config.CompImport,
			config.LogKeyName, name,
			config.LogKeyValue, field.Value)
		im.Stats.Skipped++
		return
	}

	key := calendar.FormatKey(int(date.Month())-1, date.Day())
	if _, dup := im.Records[key]; dup {
		slog.Warn(config.MsgDuplicateKey,
			config.LogKeyComponent, config.CompImport,
			config.LogKeyKey, key,
			config.LogKeyName, name)
		im.Stats.Duplicates++
		return
	}

	rec := events.Record{Category: category, Lines: []string{fmt.Sprintf(format, name)}}
	contact := Contact{UID: contactUID(name, date), Name: name, Key: key, Category: category}
	if yearKnown {
		rec.OriginYear = events.Origin(date.Year())
		contact.OriginYear = date.Year()
	}
	im.Records[key] = rec
	im.Contacts = append(im.Contacts, contact)
	im.Stats.Dates++
}

// cardName prefers the formatted name, then the structured one.
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		return n.Value
	}
	return config.FallbackName
}

func contactUID(name string, date time.Time) string {
	input := fmt.Sprintf(config.FormatHashInput, name, date.Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

// parseDate handles the date shapes found in vCards, with or without year.
func parseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates carry no year; a leap year keeps --02-29 valid.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
