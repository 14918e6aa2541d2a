package components

// Identity names a creature. ID is unique for the lifetime of the process.
type Identity struct {
	ID   uint32 `inspect:"label"`
	Name string `inspect:"label"`
}

// Needs tracks a creature's internal drives.
// Hunger, boredom and age only grow, except boredom which resets on reproduction.
// Energy only grows by eating.
type Needs struct {
	Energy  float64 `inspect:"bar,max:200"`
	Hunger  float64 `inspect:"bar,max:60"`
	Boredom float64 `inspect:"bar,max:60"`
	Age     float64 `inspect:"bar,max:500"`
}
