package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/config"
)

// TestParseDate covers the date shapes found in real address books.
func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		want      time.Time
		yearKnown bool
		wantErr   bool
	}{
		{"Full dash", "1990-05-20", time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC), true, false},
		{"Full basic", "19900520", time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC), true, false},
		{"RFC3339", "1990-05-20T08:30:00Z", time.Date(1990, 5, 20, 8, 30, 0, 0, time.UTC), true, false},
		{"Truncated with dash", "--05-20", time.Date(config.DefaultLeapYear, 5, 20, 0, 0, 0, 0, time.UTC), false, false},
		{"Truncated basic", "--0520", time.Date(config.DefaultLeapYear, 5, 20, 0, 0, 0, 0, time.UTC), false, false},
		{"Truncated leap day", "--02-29", time.Date(config.DefaultLeapYear, 2, 29, 0, 0, 0, 0, time.UTC), false, false},
		{"Garbage", "next tuesday", time.Time{}, false, true},
		{"Impossible date", "1990-02-30", time.Time{}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known, err := parseDate(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.EqualError(t, err, config.ErrDateParse)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, tt.yearKnown, known)
		})
	}
}

func TestSource_ResolvedFormat(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		want string
	}{
		{"Local JSON", Source{Mode: config.SourceModeLocal, Path: "events.json"}, config.FormatJSON},
		{"Local vcf", Source{Mode: config.SourceModeLocal, Path: "/home/me/Contacts.VCF"}, config.FormatVCard},
		{"Local vcard", Source{Mode: config.SourceModeLocal, Path: "book.vcard"}, config.FormatVCard},
		{"Web ignores query", Source{Mode: config.SourceModeWeb, URL: "https://x.org/book.vcf?v=.json"}, config.FormatVCard},
		{"No extension", Source{Mode: config.SourceModeWeb, URL: "https://x.org/api/events"}, config.FormatJSON},
		{"Explicit wins", Source{Mode: config.SourceModeLocal, Path: "events.json", Format: "VCARD"}, config.FormatVCard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.src.ResolvedFormat())
		})
	}
}

func TestSource_Name(t *testing.T) {
	assert.Equal(t, "events.json", Source{Mode: config.SourceModeLocal, Path: "events.json"}.Name())
	assert.Equal(t, "https://x.org/book.vcf", Source{Mode: config.SourceModeWeb, URL: "https://u:p@x.org/book.vcf?t=1"}.Name())
}

// TestUIDs verifies identifiers are stable and distinct.
func TestUIDs(t *testing.T) {
	assert.Equal(t, eventUID("11-05", 2025), eventUID("11-05", 2025))
	assert.NotEqual(t, eventUID("11-05", 2025), eventUID("11-05", 2026))
	assert.NotEqual(t, eventUID("11-05", 2025), eventUID("11-06", 2025))
	assert.Contains(t, eventUID("11-05", 2025), "-2025@"+config.ICalDomain)

	date := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	uid := contactUID("Alice", date)
	assert.Len(t, uid, config.UIDHashLength*2)
	assert.Equal(t, uid, contactUID("Alice", date))
	assert.NotEqual(t, uid, contactUID("Bob", date))
}
