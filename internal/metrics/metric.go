// Package metrics holds the scalar frame statistics used by the step
// controller and the run summaries.
package metrics

// Metric aggregates one scalar per frame.
type Metric interface {
	Name() string
	Observe(x float64)
	Value() float64
	Reset()
}
