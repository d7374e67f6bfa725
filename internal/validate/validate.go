package validate

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/5w1tchy/wordlist-api/internal/config"
	"github.com/5w1tchy/wordlist-api/internal/generator"
)

var ErrInvalid = errors.New("invalid")

const maxDateLen = 40

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Errors collects every rejected field of one request.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, f := range e {
		parts[i] = f.Field + ": " + f.Message
	}
	return strings.Join(parts, "; ")
}

func (e Errors) Unwrap() error { return ErrInvalid }

// RequireBounded trims and ensures length bounds.
func RequireBounded(name, s string, min, max int) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < min || utf8.RuneCountInString(s) > max {
		return "", errors.New(name + " must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max) + " characters")
	}
	return s, nil
}

// GenerationInput enforces the request-size policy in front of the
// generator: bounded field lengths and keyword count. It does not reject an
// unparseable birthdate; the generator treats that as absent.
func GenerationInput(raw generator.RawInput, lim config.Generation) error {
	var errs Errors
	for _, f := range []struct{ name, val string }{
		{"first_name", raw.FirstName},
		{"last_name", raw.LastName},
	} {
		if _, err := RequireBounded(f.name, f.val, 0, lim.MaxFieldLen); err != nil {
			errs = append(errs, FieldError{Field: f.name, Code: "too_long", Message: err.Error()})
		}
	}
	if utf8.RuneCountInString(raw.Birthdate) > maxDateLen {
		errs = append(errs, FieldError{Field: "birthdate", Code: "too_long", Message: "birthdate is too long"})
	}

	count := 0
	for _, k := range strings.Split(raw.Keywords, ",") {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		count++
		if utf8.RuneCountInString(k) > lim.MaxFieldLen {
			errs = append(errs, FieldError{
				Field:   "keywords",
				Code:    "too_long",
				Message: "each keyword must be at most " + strconv.Itoa(lim.MaxFieldLen) + " characters",
			})
			break
		}
	}
	if lim.MaxKeywords > 0 && count > lim.MaxKeywords {
		errs = append(errs, FieldError{
			Field:   "keywords",
			Code:    "too_many",
			Message: "at most " + strconv.Itoa(lim.MaxKeywords) + " keywords are allowed",
		})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ClampPage parses 1-based paging. Bad or out-of-range values fall back to
// page 1 and the default size.
func ClampPage(pageRaw, sizeRaw string, def, max int) (int, int) {
	size := def
	if v, err := strconv.Atoi(strings.TrimSpace(sizeRaw)); err == nil && v >= 1 && v <= max {
		size = v
	}
	page := 1
	if v, err := strconv.Atoi(strings.TrimSpace(pageRaw)); err == nil && v >= 1 {
		page = v
	}
	return page, size
}

// ParseBool accepts "1"/"true" (any case); anything else is false.
func ParseBool(s string) bool {
	s = strings.TrimSpace(s)
	return s == "1" || strings.EqualFold(s, "true")
}
