package generator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/5w1tchy/wordlist-api/internal/generator"
)

func TestStrengthScore(t *testing.T) {
	cases := []struct {
		pwd  string
		want int
	}{
		{"", 0},
		{"Ab1!", 28},
		{"abc", 11},
		{"ABC", 11},
		{"123", 11},
		{"---", 11},
		{"abcdefghij", 25},
		{strings.Repeat("a", 50), 25},
		{"Password123!", 40},
		{"éé", 9},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, generator.StrengthScore(tc.pwd), "score(%q)", tc.pwd)
	}
}

func TestStrengthScore_Bounds(t *testing.T) {
	for _, s := range []string{"", "x", "aA1!aA1!aA1!aA1!", strings.Repeat("Zz9#", 100)} {
		got := generator.StrengthScore(s)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}

func TestRate(t *testing.T) {
	assert.Equal(t, generator.Rating{Score: 0, Label: "very_weak"}, generator.Rate(""))
	assert.Equal(t, generator.Rating{Score: 28, Label: "weak"}, generator.Rate("Ab1!"))
	assert.Equal(t, generator.Rating{Score: 30, Label: "fair"}, generator.Rate("password12"))
	assert.Equal(t, generator.Rating{Score: 40, Label: "strong"}, generator.Rate("Password123!"))
}
