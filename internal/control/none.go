package control

// Fixed keeps the step count constant.
type Fixed struct{}

func NewFixed() *Fixed { return &Fixed{} }

func (f *Fixed) Name() string { return "fixed" }

func (f *Fixed) Delta(fps float64, req Request) int { return 0 }
