package systems

import (
	"math/rand"

	"github.com/pthm-cable/critters/components"
)

// GoTo steps pos toward (tx, ty) by speed*dt along the unit direction and
// returns the distance measured before the step. The step is not clamped,
// so a fast mover can overshoot a close target.
func GoTo(pos *components.Position, tx, ty, speed, dt float64) float64 {
	dx := tx - pos.X
	dy := ty - pos.Y
	dist := distance(pos.X, pos.Y, tx, ty)
	if dist > 0 {
		pos.X += dx / dist * speed * dt
		pos.Y += dy / dist * speed * dt
	}
	return dist
}

// Wander displaces pos by a uniform random vector in [-1, 1]^2 scaled by
// speed*dt and clamps the result to [0, width] x [0, height].
func Wander(pos *components.Position, rng *rand.Rand, speed, dt, width, height float64) {
	x := (rng.Float64()*2 - 1) * speed * dt
	y := (rng.Float64()*2 - 1) * speed * dt
	pos.X = min(max(pos.X+x, 0), width)
	pos.Y = min(max(pos.Y+y, 0), height)
}
