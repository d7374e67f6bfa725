package generator

import "time"

// Options toggles the mutation passes. The zero value disables all of them.
type Options struct {
	Numbers        bool `json:"numbers" yaml:"numbers"`
	SpecialChars   bool `json:"special_chars" yaml:"special_chars"`
	Capitalization bool `json:"capitalization" yaml:"capitalization"`
	Substitutions  bool `json:"substitutions" yaml:"substitutions"`
}

// DefaultOptions enables every pass.
func DefaultOptions() Options {
	return Options{Numbers: true, SpecialChars: true, Capitalization: true, Substitutions: true}
}

// Date is a calendar date without time or zone.
type Date struct {
	Year  int
	Month int // 1..12
	Day   int // 1..31
}

// RawInput is the record as captured from a form or flags.
type RawInput struct {
	FirstName string
	LastName  string
	Birthdate string // YYYY-MM-DD; RFC3339 and YYYY/MM/DD are accepted too
	Keywords  string // comma separated
	Options   Options
}

// Input is a normalized record. See Normalize.
type Input struct {
	FirstName string
	LastName  string
	Birthdate *Date
	Keywords  []string
	Options   Options
}

// Empty reports whether no field can seed a candidate.
func (in Input) Empty() bool {
	return in.FirstName == "" && in.LastName == "" && in.Birthdate == nil && len(in.Keywords) == 0
}

// Clock supplies the current calendar year for the year-suffix pass.
type Clock interface {
	Year() int
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Year() int { return time.Now().Year() }

// FixedClock always reports the same year.
type FixedClock int

func (c FixedClock) Year() int { return int(c) }

// Stats counts what each stage contributed to one generation call.
type Stats struct {
	Seeds          int `json:"seeds"`
	Combinations   int `json:"combinations"`
	Numbers        int `json:"numbers"`
	SpecialChars   int `json:"special_chars"`
	Capitalization int `json:"capitalization"`
	Substitutions  int `json:"substitutions"`
	Total          int `json:"total"`
}
