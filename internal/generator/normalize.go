package generator

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
}

// Normalize trims names, splits keywords on commas (dropping empty tokens,
// keeping order) and parses the birthdate. Malformed fields are treated as
// absent; Normalize never fails.
func Normalize(raw RawInput) Input {
	in := Input{
		FirstName: strings.TrimSpace(raw.FirstName),
		LastName:  strings.TrimSpace(raw.LastName),
		Birthdate: ParseDate(raw.Birthdate),
		Options:   raw.Options,
	}
	for _, k := range strings.Split(raw.Keywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			in.Keywords = append(in.Keywords, k)
		}
	}
	return in
}

// ParseDate returns nil for an empty or unparseable value.
func ParseDate(s string) *Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return &Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
	}
	return nil
}
