package control

// Manual changes the step count only on explicit requests.
type Manual struct{}

func NewManual() *Manual { return &Manual{} }

func (m *Manual) Name() string { return "manual" }

// Delta returns +1 for an up request and -1 for a down request. Up wins
// when both are set.
func (m *Manual) Delta(fps float64, req Request) int {
	switch {
	case req.Up:
		return 1
	case req.Down:
		return -1
	}
	return 0
}
