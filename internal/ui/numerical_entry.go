package ui

import (
	"errors"
	"strconv"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts digits from the keyboard.
type NumericalEntry struct {
	widget.Entry
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// NewRangeEntry returns a NumericalEntry whose validator requires an
// integer in [min, max]. The messages are shown as-is.
func NewRangeEntry(min, max int, requiredMsg, rangeMsg string) *NumericalEntry {
	entry := NewNumericalEntry()
	entry.Validator = func(s string) error {
		if s == "" {
			return errors.New(requiredMsg)
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < min || n > max {
			return errors.New(rangeMsg)
		}
		return nil
	}
	return entry
}

// TypedRune drops everything but digits. Pasted text is left to the validator.
func (e *NumericalEntry) TypedRune(r rune) {
	if r >= '0' && r <= '9' {
		e.Entry.TypedRune(r)
	}
}

// Keyboard requests a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
