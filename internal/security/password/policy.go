package password

import (
	"errors"
	"strings"

	"github.com/5w1tchy/wordlist-api/internal/generator"
)

const MinLen = 12

var ErrTooShort = errors.New("weak_password.length")

type Warning struct {
	Score   int    `json:"score"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// Validate trims an operator password and blocks only on MinLen. Weak
// passwords get a warning, and so do passwords containing a hint (e.g. the
// email local part), since those are exactly what the generator produces.
func Validate(pwd string, hints ...string) (trimmed string, warn *Warning, err error) {
	trimmed = strings.TrimSpace(pwd)
	if len([]rune(trimmed)) < MinLen {
		return trimmed, nil, ErrTooShort
	}

	rating := generator.Rate(trimmed)
	lower := strings.ToLower(trimmed)
	for _, h := range hints {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" && strings.Contains(lower, h) {
			return trimmed, &Warning{Score: rating.Score, Label: rating.Label, Message: "password contains personal information"}, nil
		}
	}
	if rating.Label != "strong" {
		return trimmed, &Warning{Score: rating.Score, Label: rating.Label, Message: "mix upper/lower case, digits and symbols"}, nil
	}
	return trimmed, nil, nil
}
