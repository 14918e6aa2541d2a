package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/ui"
)

// World-space draw sizes
const (
	creatureRadius = 4
	foodRadius     = 2
)

var (
	colorBackground = rl.Color{R: 18, G: 20, B: 24, A: 255}
	colorWorld      = rl.Color{R: 28, G: 32, B: 38, A: 255}
	colorBounds     = rl.Color{R: 70, G: 70, B: 80, A: 255}
	colorFood       = rl.Red
	colorStarving   = rl.Color{R: 90, G: 60, B: 60, A: 255}
	colorHealthy    = rl.Color{R: 90, G: 220, B: 120, A: 255}
	colorEngaged    = rl.Color{R: 255, G: 120, B: 200, A: 255}
)

// Draw renders the game.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	g.drawWorldBounds()
	g.drawFood()
	g.drawActiveOverlays()
	g.drawCreatures()
	g.drawActiveLabels()
	g.inspector.DrawSelectionHighlight(g.sim.World(), g.camera, g.cfg.Perception.VisionRadius)

	g.drawUI()
	g.inspector.Draw(g.sim.World())
	g.drawTooltip()

	rl.EndDrawing()
}

// drawWorldBounds fills the world rectangle.
func (g *Game) drawWorldBounds() {
	x0, y0 := g.camera.WorldToScreen(0, 0)
	x1, y1 := g.camera.WorldToScreen(float32(g.cfg.World.Width), float32(g.cfg.World.Height))
	rect := rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	rl.DrawRectangleRec(rect, colorWorld)
	rl.DrawRectangleLinesEx(rect, 1, colorBounds)
}

// drawFood renders food items as red dots.
func (g *Game) drawFood() {
	r := max(foodRadius*g.camera.Zoom, 1)
	g.sim.World().EachFood(func(_ ecs.Entity, pos *components.Position, _ *components.Food) {
		if !g.camera.IsVisible(float32(pos.X), float32(pos.Y), foodRadius) {
			return
		}
		sx, sy := g.camera.WorldToScreen(float32(pos.X), float32(pos.Y))
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, r, colorFood)
	})
}

// drawCreatures renders creatures coloured by energy. Engaged creatures get a ring.
func (g *Game) drawCreatures() {
	r := max(creatureRadius*g.camera.Zoom, 2)
	full := g.cfg.Needs.InitialEnergy

	g.sim.World().EachCreature(func(_ ecs.Entity, pos *components.Position, _ *components.Identity, needs *components.Needs, mind *components.Mind) {
		if !g.camera.IsVisible(float32(pos.X), float32(pos.Y), creatureRadius) {
			return
		}
		sx, sy := g.camera.WorldToScreen(float32(pos.X), float32(pos.Y))
		center := rl.Vector2{X: sx, Y: sy}

		rl.DrawCircleV(center, r, energyColor(needs.Energy, full))
		if mind.Engaged {
			rl.DrawCircleLinesV(center, r+2, colorEngaged)
		}
	})
}

// energyColor maps energy onto a starving-to-healthy gradient that
// saturates at full.
func energyColor(energy, full float64) rl.Color {
	t := float32(0)
	if full > 0 {
		t = float32(min(max(energy/full, 0), 1))
	}
	return rl.Color{
		R: uint8(float32(colorStarving.R) + (float32(colorHealthy.R)-float32(colorStarving.R))*t),
		G: uint8(float32(colorStarving.G) + (float32(colorHealthy.G)-float32(colorStarving.G))*t),
		B: uint8(float32(colorStarving.B) + (float32(colorHealthy.B)-float32(colorStarving.B))*t),
		A: 255,
	}
}

// drawUI draws the HUD and applies its button presses.
func (g *Game) drawUI() {
	w := g.sim.World()

	engaged := 0
	w.EachCreature(func(_ ecs.Entity, _ *components.Position, _ *components.Identity, _ *components.Needs, mind *components.Mind) {
		if mind.Engaged {
			engaged++
		}
	})

	action := g.hud.Draw(ui.HUDData{
		Title:     "Critters",
		Creatures: w.CreatureCount(),
		Engaged:   engaged,
		Food:      w.FoodCount(),
		FoodCap:   g.cfg.Food.Cap,
		Tick:      g.sim.Tick(),
		Speed:     g.speed,
		FPS:       rl.GetFPS(),
		Paused:    g.paused,
	})
	switch action {
	case ui.HUDTogglePause:
		g.TogglePause()
	case ui.HUDSlower:
		g.SetSpeed(g.speed - 1)
	case ui.HUDFaster:
		g.SetSpeed(g.speed + 1)
	}

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perf.Stats())
	}

	g.hud.DrawControls(int32(g.screenHeight),
		"SPACE: Pause | Up/Down: Speed | Wheel: Zoom | Drag: Move/Pan | Right: Food | "+g.overlays.Legend())
}
