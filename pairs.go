package roaring

// pairs walks two container sequences in lockstep by key. Each call to next
// yields the smallest unconsumed key together with the container(s) holding
// it: both sides on a key match, one side otherwise.
type pairs struct {
	a, b *Bitmap
	i, j int
}

func (p *pairs) next() (key uint16, ca, cb *container, ok bool) {
	switch {
	case p.i >= len(p.a.containers) && p.j >= len(p.b.containers):
		return 0, nil, nil, false
	case p.i >= len(p.a.containers):
		key, cb = p.b.index[p.j], &p.b.containers[p.j]
		p.j++
	case p.j >= len(p.b.containers):
		key, ca = p.a.index[p.i], &p.a.containers[p.i]
		p.i++
	default:
		k1, k2 := p.a.index[p.i], p.b.index[p.j]
		switch {
		case k1 < k2:
			key, ca = k1, &p.a.containers[p.i]
			p.i++
		case k1 > k2:
			key, cb = k2, &p.b.containers[p.j]
			p.j++
		default:
			key, ca, cb = k1, &p.a.containers[p.i], &p.b.containers[p.j]
			p.i++
			p.j++
		}
	}
	return key, ca, cb, true
}
