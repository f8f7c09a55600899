package control

// Auto lowers the step count while the frame rate is below Target and
// raises it once the rate exceeds Target+Boundary. Inside the band the
// count is left alone.
type Auto struct {
	Target   float64
	Boundary float64
}

func NewAuto(target, boundary float64) *Auto {
	return &Auto{Target: target, Boundary: boundary}
}

func (a *Auto) Name() string { return "auto" }

// Delta ignores manual requests. A non-positive fps means no measurement is
// available yet.
func (a *Auto) Delta(fps float64, req Request) int {
	switch {
	case fps <= 0:
		return 0
	case fps < a.Target:
		return -1
	case fps > a.Target+a.Boundary:
		return 1
	}
	return 0
}
