package generator

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Generator turns an Input into candidates. It holds only configuration, so
// one Generator may serve concurrent calls; each call gets its own set.
type Generator struct {
	clock         Clock
	maxCandidates int
}

type Option func(*Generator)

// WithClock pins the year used by the numeric pass.
func WithClock(c Clock) Option {
	return func(g *Generator) {
		if c != nil {
			g.clock = c
		}
	}
}

// WithMaxCandidates bounds the candidate set. n <= 0 means unbounded.
func WithMaxCandidates(n int) Option {
	return func(g *Generator) { g.maxCandidates = n }
}

func New(opts ...Option) *Generator {
	g := &Generator{clock: SystemClock{}}
	for _, o := range opts {
		o(g)
	}
	return g
}

// MaxCandidates reports the configured bound (0 = unbounded).
func (g *Generator) MaxCandidates() int { return g.maxCandidates }

// Generate returns the candidates for in, shortest first.
func (g *Generator) Generate(in Input) ([]string, error) {
	out, _, err := g.GenerateWithStats(in)
	return out, err
}

// GenerateWithStats is Generate plus per-stage counts. On ErrLimitExceeded
// the stats describe how far the call got.
func (g *Generator) GenerateWithStats(in Input) ([]string, Stats, error) {
	var st Stats
	if in.Empty() {
		return []string{}, st, nil
	}

	r := &run{
		set:   newCandidateSet(g.maxCandidates),
		lower: cases.Lower(language.Und),
		upper: cases.Upper(language.Und),
		year:  g.clock.Year(),
	}
	r.prepare(in)

	stage := func(n *int, fn func()) {
		before := r.set.len()
		fn()
		*n = r.set.len() - before
	}

	stage(&st.Seeds, r.seeds)
	stage(&st.Combinations, r.combinations)
	if in.Options.Numbers {
		stage(&st.Numbers, r.numberPass)
	}
	if in.Options.SpecialChars {
		stage(&st.SpecialChars, r.specialCharPass)
	}
	if in.Options.Capitalization {
		stage(&st.Capitalization, r.capitalizationPass)
	}
	if in.Options.Substitutions {
		stage(&st.Substitutions, r.substitutionPass)
	}
	st.Total = r.set.len()

	if r.set.err != nil {
		return nil, st, r.set.err
	}
	return byLength(r.set.items), st, nil
}

// Generate runs a default Generator (wall clock, unbounded).
func Generate(in Input) ([]string, error) {
	return New().Generate(in)
}

// run is the state of one generation call. Casers are stateful, so they live
// here rather than on Generator.
type run struct {
	set   *candidateSet
	lower cases.Caser
	upper cases.Caser
	year  int

	first, last name
	date        *dateParts
	keywords    []string
}

type name struct {
	full    string // lowercase
	prefix  string // first three runes, empty if shorter
	initial string
}

func (n name) present() bool { return n.full != "" }

type dateParts struct {
	Y, y, M, D string
}
