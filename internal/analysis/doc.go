// Package analysis looks at stored frame telemetry in the frequency domain.
// The step controller moves one step per frame, so a run that hunts around
// its frame rate target shows up as a spectral peak in sim_steps.
package analysis
