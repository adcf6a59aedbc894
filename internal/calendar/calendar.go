package calendar

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tartampluch/go-calendar/internal/config"
)

var (
	monthNames = [config.MonthsPerYear]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	dayNames    = [config.DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	dayInitials = [config.DaysPerWeek]string{"S", "M", "T", "W", "T", "F", "S"}
)

// Date is a calendar day. Month is zero-based (0 = January) to match the
// rest of the rendering pipeline; Day is one-based.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Weekday returns the day of the week, 0 = Sunday.
func (d Date) Weekday() int {
	return WeekdayOf(d.Year, d.Month, d.Day)
}

// IsWeekend reports whether the date falls on a Saturday or Sunday.
func (d Date) IsWeekend() bool {
	return IsWeekend(d.Weekday())
}

// Key returns the "MM-DD" key used by the event store.
func (d Date) Key() string {
	return FormatKey(d.Month, d.Day)
}

// Time converts the date to midnight in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, 0, 0, 0, 0, loc)
}

// Valid reports whether the date exists in the Gregorian calendar.
func (d Date) Valid() bool {
	if d.Month < 0 || d.Month >= config.MonthsPerYear || d.Day < 1 {
		return false
	}
	return d.Day <= DaysInMonth(d.Year, d.Month)
}

// WeekRow is one week of a month grid, Sunday first. A zero entry is a blank
// slot belonging to the previous or next month.
type WeekRow [config.DaysPerWeek]int

// Days counts the non-blank slots of the row.
func (w WeekRow) Days() int {
	n := 0
	for _, day := range w {
		if day != 0 {
			n++
		}
	}
	return n
}

// DaysInMonth returns the number of days of a zero-based month.
func DaysInMonth(year, month int) int {
	// Day 0 of the next month normalises to the last day of this one.
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekdayOf returns the day of the week of a date, 0 = Sunday.
func WeekdayOf(year, month, day int) int {
	return int(time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC).Weekday())
}

// WeeksInMonth splits a month into Sunday-first rows. Only the first and last
// rows can contain blanks.
func WeeksInMonth(year, month int) []WeekRow {
	weeks := make([]WeekRow, 0, config.MaxWeeksPerMonth)
	var row WeekRow
	col := WeekdayOf(year, month, 1)

	for day := 1; day <= DaysInMonth(year, month); day++ {
		row[col] = day
		col++
		if col == config.DaysPerWeek {
			weeks = append(weeks, row)
			row = WeekRow{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, row)
	}
	return weeks
}

// IsWeekend reports whether weekday (0 = Sunday) is Saturday or Sunday.
func IsWeekend(weekday int) bool {
	return weekday == int(time.Sunday) || weekday == int(time.Saturday)
}

// IsToday compares d against the clock's local date.
func IsToday(c Clock, d Date) bool {
	year, month, day := OrReal(c).Now().Date()
	return year == d.Year && int(month)-1 == d.Month && day == d.Day
}

// MonthName returns the English name of a zero-based month.
func MonthName(month int) string {
	if month < 0 || month >= config.MonthsPerYear {
		return ""
	}
	return monthNames[month]
}

// DayName returns the three-letter English name of a weekday.
func DayName(weekday int) string {
	if weekday < 0 || weekday >= config.DaysPerWeek {
		return ""
	}
	return dayNames[weekday]
}

// DayInitial returns the one-letter header used by compact grids.
func DayInitial(weekday int) string {
	if weekday < 0 || weekday >= config.DaysPerWeek {
		return ""
	}
	return dayInitials[weekday]
}

// DayNames returns the Sunday-first list of three-letter day names.
func DayNames() []string {
	return dayNames[:]
}

// DayInitials returns the Sunday-first list of one-letter day headers.
func DayInitials() []string {
	return dayInitials[:]
}

// FormatKey builds the "MM-DD" key of a zero-based month and a day.
func FormatKey(month, day int) string {
	return fmt.Sprintf(config.DateKeyFormat, month+1, day)
}

// ParseKey validates an "MM-DD" key and returns its zero-based month and day.
// February 29th is accepted since annotations are year-less.
func ParseKey(key string) (int, int, error) {
	if len(key) != config.DateKeyLength || key[2] != config.DateKeySeparator {
		return 0, 0, fmt.Errorf("%s: %q", config.ErrDateKey, key)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if key[i] < '0' || key[i] > '9' {
			return 0, 0, fmt.Errorf("%s: %q", config.ErrDateKey, key)
		}
	}
	month, errM := strconv.Atoi(key[:2])
	day, errD := strconv.Atoi(key[3:])
	if errM != nil || errD != nil {
		return 0, 0, fmt.Errorf("%s: %q", config.ErrDateKey, key)
	}

	d := Date{Year: config.DefaultLeapYear, Month: month - 1, Day: day}
	if !d.Valid() {
		return 0, 0, fmt.Errorf("%s: %q", config.ErrDateKey, key)
	}
	return d.Month, d.Day, nil
}
