package metrics

import "math"

// Peak tracks the largest sample since the last Reset. With no samples it
// reports 0.
type Peak struct {
	name string
	max  float64
	seen bool
}

func NewPeak(name string) *Peak {
	return &Peak{name: name}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x float64) {
	if !p.seen {
		p.max, p.seen = x, true
		return
	}
	p.max = math.Max(p.max, x)
}

func (p *Peak) Value() float64 {
	if !p.seen {
		return 0
	}
	return p.max
}

func (p *Peak) Reset() {
	p.max = 0
	p.seen = false
}
