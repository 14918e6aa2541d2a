package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/critters/components"
)

func TestGoTo(t *testing.T) {
	tests := []struct {
		name         string
		from         components.Position
		tx, ty       float64
		speed, dt    float64
		wantDist     float64
		wantX, wantY float64
	}{
		{"axis step", components.Position{X: 0, Y: 0}, 10, 0, 10, 0.1, 10, 1, 0},
		{"diagonal", components.Position{X: 0, Y: 0}, 3, 4, 10, 0.5, 5, 3, 4},
		{"on target", components.Position{X: 2, Y: 2}, 2, 2, 10, 1, 0, 2, 2},
		{"overshoot", components.Position{X: 0, Y: 0}, 0.5, 0, 10, 1, 0.5, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := tt.from
			dist := GoTo(&pos, tt.tx, tt.ty, tt.speed, tt.dt)

			if math.Abs(dist-tt.wantDist) > 1e-9 {
				t.Errorf("distance = %v, want pre-move %v", dist, tt.wantDist)
			}
			if math.Abs(pos.X-tt.wantX) > 1e-9 || math.Abs(pos.Y-tt.wantY) > 1e-9 {
				t.Errorf("moved to (%v, %v), want (%v, %v)", pos.X, pos.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestWanderBoundedStep(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pos := components.Position{X: 50, Y: 50}

	for i := 0; i < 1000; i++ {
		prev := pos
		Wander(&pos, rng, 20, 0.1, 100, 100)
		if math.Abs(pos.X-prev.X) > 2 || math.Abs(pos.Y-prev.Y) > 2 {
			t.Fatalf("step %d moved (%v, %v) -> (%v, %v), beyond speed*dt", i, prev.X, prev.Y, pos.X, pos.Y)
		}
		if pos.X < 0 || pos.X > 100 || pos.Y < 0 || pos.Y > 100 {
			t.Fatalf("step %d left the world: (%v, %v)", i, pos.X, pos.Y)
		}
	}
}

func TestWanderClampsAtEdges(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pos := components.Position{X: 0, Y: 100}

	for i := 0; i < 200; i++ {
		Wander(&pos, rng, 100, 1, 100, 100)
		if pos.X < 0 || pos.X > 100 || pos.Y < 0 || pos.Y > 100 {
			t.Fatalf("wander escaped bounds: (%v, %v)", pos.X, pos.Y)
		}
	}
}
