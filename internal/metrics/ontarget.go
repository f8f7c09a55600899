package metrics

// OnTarget is the fraction of samples at or above a threshold. Used for the
// share of frames that met the target frame rate.
type OnTarget struct {
	name      string
	threshold float64
	hits      int
	samples   int
}

func NewOnTarget(name string, threshold float64) *OnTarget {
	return &OnTarget{name: name, threshold: threshold}
}

func (o *OnTarget) Name() string { return o.name }

func (o *OnTarget) Observe(x float64) {
	o.samples++
	if x >= o.threshold {
		o.hits++
	}
}

func (o *OnTarget) Value() float64 {
	if o.samples == 0 {
		return 1.0
	}
	return float64(o.hits) / float64(o.samples)
}

func (o *OnTarget) Reset() {
	o.hits = 0
	o.samples = 0
}
