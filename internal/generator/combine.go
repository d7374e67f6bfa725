package generator

func (r *run) combinations() {
	r.nameDate()
	r.nameKeyword()
}

func (r *run) nameDate() {
	d := r.date
	if d == nil {
		return
	}
	for _, n := range []name{r.first, r.last} {
		if !n.present() {
			continue
		}
		r.set.add(n.full + d.Y)
		r.set.add(n.full + d.y)
		r.set.add(n.full + d.M + d.D)
	}
	if r.first.present() && r.last.present() {
		f, l := r.first, r.last
		r.set.add(f.full + l.full + d.Y)
		r.set.add(f.full + l.full + d.y)
		r.set.add(f.initial + l.full + d.Y)
	}
}

func (r *run) nameKeyword() {
	both := r.first.present() && r.last.present()
	for _, k := range r.keywords {
		for _, n := range []name{r.first, r.last} {
			if !n.present() {
				continue
			}
			r.set.add(n.full + k)
			r.set.add(k + n.full)
		}
		if both {
			r.set.add(r.first.initial + r.last.full + k)
		}
	}
}
