package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/ballsim/internal/body"
	"github.com/san-kum/ballsim/internal/vec"
)

func TestEffectiveDt(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.016, 0.016},
		{0, FallbackDt},
		{-1, FallbackDt},
	}
	for _, tt := range tests {
		if got := EffectiveDt(tt.in); got != tt.want {
			t.Errorf("EffectiveDt(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEulerGravityAndResistance(t *testing.T) {
	e := NewEuler[vec.Vec2](10, 0, 0.5, 1000)
	b := &body.Body[vec.Vec2]{Position: vec.Vec2{100, 100}, Velocity: vec.Vec2{4, 0}, Radius: 1}

	e.Step(b, Drive[vec.Vec2]{Gravity: true}, 0.1)

	// v = (4, 0+10) * 0.5 = (2, 5); p += v*0.1
	if math.Abs(b.Velocity[0]-2) > 1e-12 || math.Abs(b.Velocity[1]-5) > 1e-12 {
		t.Errorf("velocity = %v, want (2, 5)", b.Velocity)
	}
	if math.Abs(b.Position[0]-100.2) > 1e-12 || math.Abs(b.Position[1]-100.5) > 1e-12 {
		t.Errorf("position = %v, want (100.2, 100.5)", b.Position)
	}
}

func TestEulerGravityOff(t *testing.T) {
	e := NewEuler[vec.Vec3](9.81, 0, 1, 1000)
	b := &body.Body[vec.Vec3]{Position: vec.Vec3{1, 1, 1}, Radius: 1}

	e.Step(b, Drive[vec.Vec3]{}, 0.016)

	if b.Velocity != (vec.Vec3{}) || b.Position != (vec.Vec3{1, 1, 1}) {
		t.Errorf("body moved without forcing: p=%v v=%v", b.Position, b.Velocity)
	}
}

func TestEulerSpeedCeiling(t *testing.T) {
	e := NewEuler[vec.Vec2](0, 0, 1, 50)
	b := &body.Body[vec.Vec2]{Velocity: vec.Vec2{300, 400}, Radius: 1}

	e.Step(b, Drive[vec.Vec2]{}, 0.01)

	if s := b.Speed(); math.Abs(s-50) > 1e-9 {
		t.Errorf("speed = %v, want 50", s)
	}
	if math.Abs(b.Velocity[0]/b.Velocity[1]-0.75) > 1e-12 {
		t.Errorf("direction changed: %v", b.Velocity)
	}
}

func TestEulerAttraction(t *testing.T) {
	e := NewEuler[vec.Vec2](0, 2, 1, 1000)
	drive := Drive[vec.Vec2]{Attract: true, Pointer: vec.Vec2{10, 0}}

	b := &body.Body[vec.Vec2]{Radius: 1}
	e.Step(b, drive, 0.5)
	// v += (10, 0) * 2 * 0.5
	if math.Abs(b.Velocity[0]-10) > 1e-12 {
		t.Errorf("velocity = %v, want (10, 0)", b.Velocity)
	}

	near := &body.Body[vec.Vec2]{Position: vec.Vec2{9.95, 0}, Radius: 1}
	e.Step(near, drive, 0.5)
	if near.Velocity != (vec.Vec2{}) {
		t.Errorf("body inside dead zone was attracted: %v", near.Velocity)
	}
}

func TestEulerFallbackDt(t *testing.T) {
	e := NewEuler[vec.Vec2](0, 0, 1, 1000)
	b := &body.Body[vec.Vec2]{Velocity: vec.Vec2{100, 0}, Radius: 1}

	e.Step(b, Drive[vec.Vec2]{}, 0)

	if math.Abs(b.Position[0]-100*FallbackDt) > 1e-12 {
		t.Errorf("position = %v, want %v", b.Position[0], 100*FallbackDt)
	}
}

func TestStepAll(t *testing.T) {
	e := NewEuler[vec.Vec2](1, 0, 1, 1000)
	s := body.NewSet[vec.Vec2](3)
	for i := 0; i < 3; i++ {
		s.Append(body.Body[vec.Vec2]{Position: vec.Vec2{float64(i), 0}, Radius: 1})
	}

	e.StepAll(s, Drive[vec.Vec2]{Gravity: true}, 0.1)

	for i, b := range s.All() {
		if b.Velocity[1] != 1 {
			t.Errorf("body %d vy = %v, want 1", i, b.Velocity[1])
		}
	}
}

func BenchmarkStepAll(b *testing.B) {
	e := NewEuler[vec.Vec3](9.81, 9.81, 0.999, 2000)
	s := body.NewSet[vec.Vec3](1000)
	for i := 0; i < 1000; i++ {
		s.Append(body.Body[vec.Vec3]{Position: vec.Vec3{float64(i), 1, 1}, Radius: 1})
	}
	drive := Drive[vec.Vec3]{Gravity: true, Attract: true, Pointer: vec.Vec3{500, 400, 400}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.StepAll(s, drive, 0.016)
	}
}
