// Package stream serves a ball world over websockets. One goroutine owns
// the world and advances it at a fixed rate; every frame is broadcast as a
// JSON [FrameMsg] and clients steer the world with [InputMsg] messages.
package stream
