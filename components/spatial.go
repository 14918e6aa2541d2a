package components

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// DistSq returns the squared distance to (x, y).
func (p Position) DistSq(x, y float64) float64 {
	dx := x - p.X
	dy := y - p.Y
	return dx*dx + dy*dy
}
