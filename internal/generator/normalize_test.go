package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/5w1tchy/wordlist-api/internal/generator"
)

func TestNormalize(t *testing.T) {
	in := generator.Normalize(generator.RawInput{
		FirstName: "  John ",
		LastName:  "\tDoe\n",
		Birthdate: "1990-05-07",
		Keywords:  " Rex, ,Football ,, blue",
		Options:   generator.Options{Numbers: true},
	})

	assert.Equal(t, "John", in.FirstName)
	assert.Equal(t, "Doe", in.LastName)
	assert.Equal(t, &generator.Date{Year: 1990, Month: 5, Day: 7}, in.Birthdate)
	assert.Equal(t, []string{"Rex", "Football", "blue"}, in.Keywords)
	assert.True(t, in.Options.Numbers)
	assert.False(t, in.Empty())
}

func TestNormalize_EmptyRecord(t *testing.T) {
	in := generator.Normalize(generator.RawInput{FirstName: " ", Keywords: ",,"})
	assert.True(t, in.Empty())
	assert.Nil(t, in.Keywords)
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want *generator.Date
	}{
		{"2001-12-31", &generator.Date{Year: 2001, Month: 12, Day: 31}},
		{"2001/01/02", &generator.Date{Year: 2001, Month: 1, Day: 2}},
		{"2001-01-02T23:30:00+05:00", &generator.Date{Year: 2001, Month: 1, Day: 2}},
		{" 1999-07-04 ", &generator.Date{Year: 1999, Month: 7, Day: 4}},
		{"", nil},
		{"yesterday", nil},
		{"2001-02-30", nil},
		{"31/12/2001", nil},
		{"1990-5-7", nil}, // only zero-padded layouts are accepted
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, generator.ParseDate(tc.in))
		})
	}
}
