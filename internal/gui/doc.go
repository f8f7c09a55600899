// Package gui is the raylib window host. It owns frame timing, input
// sampling and drawing; every physics change goes through sim.World.Frame.
package gui
