package generator

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// FirstYear is the oldest year appended by the numeric pass.
const FirstYear = 1970

var (
	numberSuffixes = []string{"1", "12", "123", "1234", "12345", "123456", "0", "00", "01", "69", "666", "777"}
	specialChars   = []string{"!", "@", "#", "$", "%", "^", "&", "*", "?", ".", "_", "-"}

	leetChars    = "aeiostgb"
	leetReplacer = strings.NewReplacer(
		"a", "4",
		"e", "3",
		"i", "1",
		"o", "0",
		"s", "5",
		"t", "7",
		"g", "9",
		"b", "8",
	)
)

// numberPass appends the suffix catalog, then every year FirstYear..now in
// full and two-digit form.
func (r *run) numberPass() {
	base := r.set.snapshot()
	for _, p := range base {
		for _, n := range numberSuffixes {
			r.set.add(p + n)
		}
		if r.set.err != nil {
			return
		}
	}
	for year := FirstYear; year <= r.year; year++ {
		full := strconv.Itoa(year)
		short := full[len(full)-2:]
		for _, p := range base {
			r.set.add(p + full)
			r.set.add(p + short)
		}
		if r.set.err != nil {
			return
		}
	}
}

func (r *run) specialCharPass() {
	for _, p := range r.set.snapshot() {
		for _, c := range specialChars {
			r.set.add(p + c)
			r.set.add(c + p)
		}
		if r.set.err != nil {
			return
		}
	}
}

func (r *run) capitalizationPass() {
	for _, p := range r.set.snapshot() {
		if p == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(p)
		r.set.add(r.upper.String(p[:size]) + p[size:])
		r.set.add(r.upper.String(p))
		if r.set.err != nil {
			return
		}
	}
}

// substitutionPass replaces every mapped lowercase letter at once and keeps
// the result only when something changed.
func (r *run) substitutionPass() {
	for _, p := range r.set.snapshot() {
		if !strings.ContainsAny(p, leetChars) {
			continue
		}
		r.set.add(leetReplacer.Replace(p))
		if r.set.err != nil {
			return
		}
	}
}
