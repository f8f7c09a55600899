// Package control adapts the number of collision passes run per frame.
//
// A [StepController] holds the live step count and delegates each frame's
// decision to a [Policy]:
//
//   - [Auto]: follow the smoothed frame rate toward a target
//   - [Manual]: honour explicit increment and decrement requests
//   - [Fixed]: never change the count
//
// Whatever the policy returns, the count stays within [MinSteps, MaxSteps].
//
// # Usage
//
//	ctl := control.NewStepController(20, control.NewAuto(60, 10))
//	// once per frame, after the frame rate is known
//	steps := ctl.Update(fps.Value(), control.Request{})
package control
