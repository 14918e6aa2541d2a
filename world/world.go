// Package world owns the creature and food rosters and the food lifecycle.
package world

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/components"
)

// Founder describes a creature present at world setup.
type Founder struct {
	Name string
	X, Y float64
}

// Options configures a World.
type Options struct {
	FoodCap         int
	FoodSpawnChance float64
	InitialEnergy   float64

	// RNG drives food spawning. Defaults to a fixed seed when nil.
	RNG *rand.Rand

	// CreatureIDs and FoodIDs allocate identities. Fresh allocators starting at 0 when nil.
	CreatureIDs *IDs
	FoodIDs     *IDs
}

// World is a bounded rectangle holding every creature and food item.
// It is not safe for concurrent use.
type World struct {
	width, height int

	ecs *ecs.World
	rng *rand.Rand

	creatureMapper *ecs.Map4[
		components.Position,
		components.Identity,
		components.Needs,
		components.Mind,
	]
	creatureFilter *ecs.Filter4[
		components.Position,
		components.Identity,
		components.Needs,
		components.Mind,
	]
	foodMapper *ecs.Map2[components.Position, components.Food]
	foodFilter *ecs.Filter2[components.Position, components.Food]

	posMap  *ecs.Map[components.Position]
	mindMap *ecs.Map[components.Mind]
	foodMap *ecs.Map[components.Food]

	creatureIDs *IDs
	foodIDs     *IDs

	foodCap         int
	foodSpawnChance float64
	initialEnergy   float64

	numCreatures int
	numFood      int
}

// New creates a world of the given size populated with founders.
func New(width, height int, founders []Founder, opts Options) *World {
	ew := ecs.NewWorld()

	rng := opts.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	creatureIDs := opts.CreatureIDs
	if creatureIDs == nil {
		creatureIDs = NewIDs(0)
	}
	foodIDs := opts.FoodIDs
	if foodIDs == nil {
		foodIDs = NewIDs(0)
	}

	w := &World{
		width:  width,
		height: height,
		ecs:    ew,
		rng:    rng,
		creatureMapper: ecs.NewMap4[
			components.Position,
			components.Identity,
			components.Needs,
			components.Mind,
		](ew),
		creatureFilter: ecs.NewFilter4[
			components.Position,
			components.Identity,
			components.Needs,
			components.Mind,
		](ew),
		foodMapper:      ecs.NewMap2[components.Position, components.Food](ew),
		foodFilter:      ecs.NewFilter2[components.Position, components.Food](ew),
		posMap:          ecs.NewMap[components.Position](ew),
		mindMap:         ecs.NewMap[components.Mind](ew),
		foodMap:         ecs.NewMap[components.Food](ew),
		creatureIDs:     creatureIDs,
		foodIDs:         foodIDs,
		foodCap:         opts.FoodCap,
		foodSpawnChance: opts.FoodSpawnChance,
		initialEnergy:   opts.InitialEnergy,
	}

	for _, f := range founders {
		w.AddCreature(f.Name, f.X, f.Y)
	}

	return w
}

// Width returns the world width.
func (w *World) Width() int { return w.width }

// Height returns the world height.
func (w *World) Height() int { return w.height }

// RNG returns the world's random source.
func (w *World) RNG() *rand.Rand { return w.rng }

// AddCreature appends a fresh creature at (x, y) and returns its handle.
// Must not be called while a roster query is open.
func (w *World) AddCreature(name string, x, y float64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	ident := components.Identity{ID: w.creatureIDs.Next(), Name: name}
	needs := components.Needs{Energy: w.initialEnergy}
	mind := components.Mind{Action: components.ActionWander}

	e := w.creatureMapper.NewEntity(&pos, &ident, &needs, &mind)
	w.numCreatures++
	return e
}

// RemoveCreature drops a creature from the roster. No-op if already gone.
func (w *World) RemoveCreature(e ecs.Entity) {
	if !w.IsCreature(e) {
		return
	}
	w.ecs.RemoveEntity(e)
	w.numCreatures--
}

// IsCreature reports whether e is a creature still in the roster.
func (w *World) IsCreature(e ecs.Entity) bool {
	return !e.IsZero() && w.ecs.Alive(e) && w.mindMap.Has(e)
}

// Creature returns the components of a creature.
// Pointers stay valid until the next structural change to the roster.
func (w *World) Creature(e ecs.Entity) (*components.Position, *components.Identity, *components.Needs, *components.Mind) {
	return w.creatureMapper.Get(e)
}

// Creatures appends every creature handle to dst in roster order.
func (w *World) Creatures(dst []ecs.Entity) []ecs.Entity {
	query := w.creatureFilter.Query()
	for query.Next() {
		dst = append(dst, query.Entity())
	}
	return dst
}

// CreatureCount returns the roster size.
func (w *World) CreatureCount() int { return w.numCreatures }

// EachCreature calls fn for every creature in roster order.
// fn must not add or remove entities.
func (w *World) EachCreature(fn func(e ecs.Entity, pos *components.Position, ident *components.Identity, needs *components.Needs, mind *components.Mind)) {
	query := w.creatureFilter.Query()
	for query.Next() {
		pos, ident, needs, mind := query.Get()
		fn(query.Entity(), pos, ident, needs, mind)
	}
}

// MoveCreature sets a creature's position, clamped to the world bounds.
func (w *World) MoveCreature(e ecs.Entity, x, y float64) {
	if !w.IsCreature(e) {
		return
	}
	pos := w.posMap.Get(e)
	pos.X, pos.Y = w.Clamp(x, y)
}

// CreatureAt returns the nearest non-dead creature strictly within radius of (x, y).
func (w *World) CreatureAt(x, y, radius float64) (ecs.Entity, bool) {
	var best ecs.Entity
	bestDist := radius
	found := false

	query := w.creatureFilter.Query()
	for query.Next() {
		pos, _, _, mind := query.Get()
		if mind.Dead {
			continue
		}
		d := math.Sqrt(pos.DistSq(x, y))
		if d < bestDist {
			bestDist = d
			best = query.Entity()
			found = true
		}
	}
	return best, found
}

// Clamp restricts (x, y) to [0, width] x [0, height].
func (w *World) Clamp(x, y float64) (float64, float64) {
	return clamp(x, 0, float64(w.width)), clamp(y, 0, float64(w.height))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
