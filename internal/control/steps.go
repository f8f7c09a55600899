package control

const (
	MinSteps = 1
	MaxSteps = 200
)

// Request carries the edge-triggered step keys of one frame.
type Request struct {
	Up   bool
	Down bool
}

// Policy decides how the step count moves on a frame.
type Policy interface {
	Name() string
	Delta(fps float64, req Request) int
}

// Clamp bounds n to [MinSteps, MaxSteps].
func Clamp(n int) int {
	if n < MinSteps {
		return MinSteps
	}
	if n > MaxSteps {
		return MaxSteps
	}
	return n
}

type StepController struct {
	steps  int
	policy Policy
}

// NewStepController starts at the clamped initial count. A nil policy is
// treated as Fixed.
func NewStepController(initial int, p Policy) *StepController {
	if p == nil {
		p = NewFixed()
	}
	return &StepController{steps: Clamp(initial), policy: p}
}

func (c *StepController) Steps() int { return c.steps }

func (c *StepController) Policy() Policy { return c.policy }

func (c *StepController) SetPolicy(p Policy) {
	if p == nil {
		p = NewFixed()
	}
	c.policy = p
}

// Update applies the policy for one frame and returns the new count.
func (c *StepController) Update(fps float64, req Request) int {
	c.steps = Clamp(c.steps + c.policy.Delta(fps, req))
	return c.steps
}
