package events

import (
	"regexp"
	"strconv"
)

var (
	birthdayWord    = regexp.MustCompile(`(?i)birthday`)
	anniversaryWord = regexp.MustCompile(`(?i)anniversary`)
)

// Ordinal formats n with its English suffix: 1st, 2nd, 3rd, 4th, 11th, 21st.
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// rewriteLines returns the lines of rec as they should read in targetYear.
// The input is never modified.
func rewriteLines(rec Record, targetYear int) []string {
	lines := append([]string(nil), rec.Lines...)
	if rec.OriginYear == nil || len(lines) == 0 || lines[0] == "" {
		return lines
	}

	var word *regexp.Regexp
	var label string
	switch rec.Category {
	case Birthday:
		word, label = birthdayWord, "Birthday"
	case Anniversary:
		word, label = anniversaryWord, "Anniversary"
	default:
		return lines
	}

	elapsed := targetYear - *rec.OriginYear
	if elapsed < 0 {
		return lines
	}

	ordinal := Ordinal(elapsed)
	if word.MatchString(lines[0]) {
		lines[0] = word.ReplaceAllLiteralString(lines[0], ordinal+" "+label)
	} else {
		lines[0] += " (" + ordinal + ")"
	}
	return lines
}
