package metrics

// FPSWindow is the number of frames averaged by SmoothedFPS.
const FPSWindow = 60

// SmoothedFPS is a moving average over the last FPSWindow frame rates.
// Until the window fills, the average covers the samples seen so far.
type SmoothedFPS struct {
	ring  [FPSWindow]float64
	next  int
	count int
	sum   float64
}

func NewSmoothedFPS() *SmoothedFPS {
	return &SmoothedFPS{}
}

func (s *SmoothedFPS) Name() string { return "fps" }

func (s *SmoothedFPS) Observe(fps float64) {
	if s.count == FPSWindow {
		s.sum -= s.ring[s.next]
	} else {
		s.count++
	}
	s.ring[s.next] = fps
	s.sum += fps
	s.next = (s.next + 1) % FPSWindow
}

func (s *SmoothedFPS) Value() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

func (s *SmoothedFPS) Samples() int { return s.count }

func (s *SmoothedFPS) Reset() {
	*s = SmoothedFPS{}
}
