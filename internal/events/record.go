package events

import (
	"slices"
	"strings"
)

// Category classifies an annotation. Only birthdays and anniversaries carry
// an elapsed-years rewrite.
type Category string

const (
	Birthday    Category = "birthday"
	Anniversary Category = "anniversary"
	Public      Category = "public"
	Custom      Category = "custom"
)

// Categories lists every accepted category in display order.
var Categories = []Category{Birthday, Anniversary, Public, Custom}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// Record is a stored annotation as found in an events file:
//
//	"11-05": {"type": "birthday", "lines": ["Sarah's Birthday"], "originalYear": 2004}
type Record struct {
	Category   Category `json:"type"`
	Lines      []string `json:"lines"`
	OriginYear *int     `json:"originalYear"`
}

// Origin returns a pointer suitable for Record.OriginYear.
func Origin(year int) *int {
	return &year
}

// clone deep-copies the mutable parts of the record.
func (r Record) clone() Record {
	out := Record{Category: r.Category, Lines: slices.Clone(r.Lines)}
	if r.OriginYear != nil {
		out.OriginYear = Origin(*r.OriginYear)
	}
	return out
}

// Annotation is a record rendered for a specific year.
type Annotation struct {
	Category Category
	Lines    []string
}

// VisibleLines drops blank and whitespace-only lines.
func (a Annotation) VisibleLines() []string {
	visible := make([]string, 0, len(a.Lines))
	for _, line := range a.Lines {
		if strings.TrimSpace(line) != "" {
			visible = append(visible, line)
		}
	}
	return visible
}

// Title returns the first line, or an empty string.
func (a Annotation) Title() string {
	if len(a.Lines) == 0 {
		return ""
	}
	return a.Lines[0]
}
