package world

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/components"
)

// SpawnFoodTick runs the per-tick food policy: nothing at or above the cap,
// otherwise one Bernoulli trial that places an item at a random integer
// position in [1, width] x [1, height]. Reports whether an item was added.
func (w *World) SpawnFoodTick() bool {
	if w.numFood >= w.foodCap {
		return false
	}
	if w.rng.Float64() >= w.foodSpawnChance {
		return false
	}

	x := float64(w.rng.Intn(w.width) + 1)
	y := float64(w.rng.Intn(w.height) + 1)
	w.addFood(x, y)
	return true
}

// PlaceFood adds a food item at (x, y) unless the roster is full.
func (w *World) PlaceFood(x, y float64) (ecs.Entity, bool) {
	if w.numFood >= w.foodCap {
		return ecs.Entity{}, false
	}
	return w.addFood(x, y), true
}

func (w *World) addFood(x, y float64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	food := components.Food{ID: w.foodIDs.Next()}
	e := w.foodMapper.NewEntity(&pos, &food)
	w.numFood++
	return e
}

// RemoveFood deletes a food item immediately. Removing an item that is
// already gone is a no-op and reports false.
func (w *World) RemoveFood(e ecs.Entity) bool {
	if !w.IsFood(e) {
		return false
	}
	w.ecs.RemoveEntity(e)
	w.numFood--
	return true
}

// IsFood reports whether e is a food item still in the roster.
func (w *World) IsFood(e ecs.Entity) bool {
	return !e.IsZero() && w.ecs.Alive(e) && w.foodMap.Has(e)
}

// FoodPosition returns the position of a food item.
func (w *World) FoodPosition(e ecs.Entity) *components.Position {
	return w.posMap.Get(e)
}

// Foods appends every food handle to dst in roster order.
func (w *World) Foods(dst []ecs.Entity) []ecs.Entity {
	query := w.foodFilter.Query()
	for query.Next() {
		dst = append(dst, query.Entity())
	}
	return dst
}

// EachFood calls fn for every food item in roster order.
// fn must not add or remove entities.
func (w *World) EachFood(fn func(e ecs.Entity, pos *components.Position, food *components.Food)) {
	query := w.foodFilter.Query()
	for query.Next() {
		pos, food := query.Get()
		fn(query.Entity(), pos, food)
	}
}

// FoodCount returns the food roster size.
func (w *World) FoodCount() int { return w.numFood }
