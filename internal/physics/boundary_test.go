package physics

import (
	"math"
	"testing"

	"github.com/san-kum/ballsim/internal/body"
	"github.com/san-kum/ballsim/internal/vec"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	extent := vec.Vec2{100, 50}

	tests := []struct {
		name        string
		pos, vel    vec.Vec2
		wantPos     vec.Vec2
		wantVel     vec.Vec2
		wantClamped bool
	}{
		{"inside", vec.Vec2{50, 25}, vec.Vec2{3, -4}, vec.Vec2{50, 25}, vec.Vec2{3, -4}, false},
		{"left wall moving out", vec.Vec2{2, 25}, vec.Vec2{-10, 0}, vec.Vec2{5, 25}, vec.Vec2{5, 0}, true},
		{"left wall moving in", vec.Vec2{2, 25}, vec.Vec2{10, 0}, vec.Vec2{5, 25}, vec.Vec2{10, 0}, true},
		{"floor moving out", vec.Vec2{50, 49}, vec.Vec2{0, 20}, vec.Vec2{50, 45}, vec.Vec2{0, -10}, true},
		{"corner", vec.Vec2{120, -3}, vec.Vec2{4, -8}, vec.Vec2{95, 5}, vec.Vec2{-2, 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &body.Body[vec.Vec2]{Position: tt.pos, Velocity: tt.vel, Radius: 5}
			assert.Equal(t, tt.wantClamped, Clamp(b, extent, 0.5))
			assert.InDeltaSlice(t, vec.Slice(tt.wantPos), vec.Slice(b.Position), 1e-12)
			assert.InDeltaSlice(t, vec.Slice(tt.wantVel), vec.Slice(b.Velocity), 1e-12)
			assert.True(t, Contained(b, extent))
		})
	}
}

func TestClamp3DDepth(t *testing.T) {
	b := &body.Body[vec.Vec3]{Position: vec.Vec3{50, 50, 900}, Velocity: vec.Vec3{0, 0, 30}, Radius: 10}
	extent := vec.Vec3{1200, 800, 800}

	assert.False(t, Contained(b, extent))
	assert.True(t, Clamp(b, extent, 0.6))
	assert.Equal(t, 790.0, b.Position[2])
	assert.InDelta(t, -18.0, b.Velocity[2], 1e-12)
	assert.True(t, Contained(b, extent))
}

func TestContainedRejectsNonFinite(t *testing.T) {
	extent := vec.Vec2{100, 50}
	for _, pos := range []vec.Vec2{{math.NaN(), math.NaN()}, {50, math.NaN()}, {math.Inf(1), 25}} {
		b := &body.Body[vec.Vec2]{Position: pos, Radius: 5}
		assert.False(t, Contained(b, extent), "position %v", pos)
	}
}
