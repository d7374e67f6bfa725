package generator

import "unicode/utf8"

const maxScore = 100

// StrengthScore is a coarse 0..100 heuristic: two points per character up to
// ten characters, plus five for each character class present (ASCII upper,
// ASCII lower, ASCII digit, anything else).
func StrengthScore(pwd string) int {
	l := utf8.RuneCountInString(pwd)
	var hasL, hasU, hasD, hasS bool
	for _, r := range pwd {
		switch {
		case r >= 'a' && r <= 'z':
			hasL = true
		case r >= 'A' && r <= 'Z':
			hasU = true
		case r >= '0' && r <= '9':
			hasD = true
		default:
			hasS = true
		}
	}

	score := min(l, 10) * 2
	for _, has := range []bool{hasU, hasL, hasD, hasS} {
		if has {
			score += 5
		}
	}
	return min(score, maxScore)
}

// Rating pairs a score with a coarse label.
type Rating struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

func Rate(pwd string) Rating {
	score := StrengthScore(pwd)
	var label string
	switch {
	case score >= 40:
		label = "strong"
	case score >= 30:
		label = "fair"
	case score >= 20:
		label = "weak"
	default:
		label = "very_weak"
	}
	return Rating{Score: score, Label: label}
}
