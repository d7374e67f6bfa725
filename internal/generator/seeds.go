package generator

import (
	"fmt"
	"unicode/utf8"
)

const prefixLen = 3

func (r *run) prepare(in Input) {
	r.first = r.newName(in.FirstName)
	r.last = r.newName(in.LastName)
	if d := in.Birthdate; d != nil {
		Y := fmt.Sprintf("%04d", d.Year)
		r.date = &dateParts{
			Y: Y,
			y: Y[len(Y)-2:],
			M: fmt.Sprintf("%02d", d.Month),
			D: fmt.Sprintf("%02d", d.Day),
		}
	}
	r.keywords = make([]string, 0, len(in.Keywords))
	for _, k := range in.Keywords {
		r.keywords = append(r.keywords, r.lower.String(k))
	}
}

func (r *run) newName(s string) name {
	if s == "" {
		return name{}
	}
	n := name{full: r.lower.String(s)}
	_, size := utf8.DecodeRuneInString(n.full)
	n.initial = n.full[:size]
	if utf8.RuneCountInString(s) >= prefixLen {
		n.prefix = firstRunes(n.full, prefixLen)
	}
	return n
}

func firstRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func (r *run) seeds() {
	r.nameSeeds()
	r.dateSeeds()
	for _, k := range r.keywords {
		r.set.add(k)
	}
}

func (r *run) nameSeeds() {
	for _, n := range []name{r.first, r.last} {
		if !n.present() {
			continue
		}
		r.set.add(n.full)
		if n.prefix != "" {
			r.set.add(n.prefix)
		}
	}
	if r.first.present() && r.last.present() {
		f, l := r.first, r.last
		r.set.add(f.full + l.full)
		r.set.add(f.full + "." + l.full)
		r.set.add(f.initial + l.full)
		r.set.add(f.full + l.initial)
	}
}

func (r *run) dateSeeds() {
	d := r.date
	if d == nil {
		return
	}
	r.set.add(d.Y)
	r.set.add(d.y)
	r.set.add(d.M + d.D)
	r.set.add(d.D + d.M)
	r.set.add(d.M + d.D + d.Y)
	r.set.add(d.D + d.M + d.Y)
	r.set.add(d.M + d.D + d.y)
	r.set.add(d.D + d.M + d.y)
}
