// Package dates turns the free-text dates authors write in info objects into
// the canonical day-month-year token used by the renderer and build sheet.
package dates

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Unknown is returned for empty input.
	Unknown = "Unknown"
	// Present marks a person who is still alive.
	Present = "present"

	placeholder = "?"
	circaPrefix = "c"
)

// Issue is a recoverable problem found while reading a date. The caller
// decides how to surface it, normally as a build warning.
type Issue struct {
	Raw     string
	Field   string
	Token   string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("date %q: %s", i.Raw, i.Message)
}

// Normalize converts raw into "day-month-year", prefixed with "c" when the
// date is approximate. Positions that are missing or cannot be read become
// "?"; unreadable days and years are also reported as issues.
func Normalize(raw string) (string, []Issue) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Unknown, nil
	}
	if trimmed == Present {
		return Present, nil
	}

	tokens := strings.Fields(trimmed)
	circa := false
	if isCircaToken(tokens[0]) {
		circa = true
		tokens = tokens[1:]
	}

	var issues []Issue
	if len(tokens) > 3 {
		issues = append(issues, Issue{
			Raw:     raw,
			Field:   "date",
			Token:   strings.Join(tokens[:len(tokens)-3], " "),
			Message: fmt.Sprintf("ignoring unexpected leading text %q", strings.Join(tokens[:len(tokens)-3], " ")),
		})
		tokens = tokens[len(tokens)-3:]
	}

	day, month, year := placeholder, placeholder, placeholder

	if n := len(tokens); n >= 1 {
		value, ok := parseYear(tokens[n-1])
		if ok {
			year = value
		} else {
			issues = append(issues, Issue{
				Raw:     raw,
				Field:   "year",
				Token:   tokens[n-1],
				Message: fmt.Sprintf("cannot read year from %q", tokens[n-1]),
			})
		}
	} else {
		issues = append(issues, Issue{Raw: raw, Field: "year", Message: "no year given"})
	}

	if n := len(tokens); n >= 2 {
		if index := MonthIndex(tokens[n-2]); index > 0 {
			month = strconv.Itoa(index)
		}
	}

	if len(tokens) == 3 {
		value, ok := parseDay(tokens[0])
		if ok {
			day = value
		} else {
			issues = append(issues, Issue{
				Raw:     raw,
				Field:   "day",
				Token:   tokens[0],
				Message: fmt.Sprintf("cannot read day from %q", tokens[0]),
			})
		}
	}

	out := day + "-" + month + "-" + year
	if circa {
		out = circaPrefix + out
	}
	return out, issues
}

func isCircaToken(token string) bool {
	switch strings.ToLower(token) {
	case "circa", "c.":
		return true
	default:
		return false
	}
}

func parseYear(token string) (string, bool) {
	n, err := strconv.Atoi(token)
	if err != nil || n <= 0 {
		return "", false
	}
	return strconv.Itoa(n), true
}

func parseDay(token string) (string, bool) {
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 || n > 31 {
		return "", false
	}
	return strconv.Itoa(n), true
}
