package game

import rl "github.com/gen2brain/raylib-go/raylib"

// Screen-space radius for picking a creature with the mouse.
const pickRadiusPx = 10

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeySpace) {
		g.TogglePause()
	}

	if rl.IsKeyPressed(rl.KeyUp) {
		g.SetSpeed(g.speed + 1)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		g.SetSpeed(g.speed - 1)
	}

	g.handleOverlayKeys()
	g.handleCameraInput()
	g.handleMouse()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.perfPanel.SetPosition(int32(w)-240, int32(h)-110)
}

// handleCameraInput processes zoom controls.
func (g *Game) handleCameraInput() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		g.camera.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handleMouse places food, selects and drags creatures, and pans the view.
func (g *Game) handleMouse() {
	mouse := rl.GetMousePosition()
	wx, wy := g.mouseWorld()

	// Right click places food
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) && !g.overUI(mouse.X, mouse.Y) {
		x, y := g.sim.World().Clamp(wx, wy)
		if _, ok := g.sim.World().PlaceFood(x, y); !ok {
			g.logger.Debug("food cap reached", "cap", g.cfg.Food.Cap)
		}
	}

	// Left press grabs a creature or starts a pan
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		switch {
		case g.inspector.HandleClick(mouse.X, mouse.Y), g.hud.Contains(mouse.X, mouse.Y):
			// consumed by the UI
		default:
			if e, ok := g.sim.World().CreatureAt(wx, wy, g.pickRadius()); ok {
				g.dragged = e
				g.dragging = true
				g.inspector.Select(e)
			} else {
				g.panning = true
			}
		}
	}

	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.dragging = false
		g.panning = false
	}

	if g.dragging && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		if g.sim.World().IsCreature(g.dragged) {
			g.sim.World().MoveCreature(g.dragged, wx, wy)
		} else {
			g.dragging = false
		}
	}

	panning := (g.panning && rl.IsMouseButtonDown(rl.MouseButtonLeft)) || rl.IsMouseButtonDown(rl.MouseButtonMiddle)
	if panning {
		delta := rl.GetMouseDelta()
		g.camera.Pan(-delta.X, -delta.Y)
	}
}

// mouseWorld returns the mouse position in world coordinates.
func (g *Game) mouseWorld() (float64, float64) {
	mouse := rl.GetMousePosition()
	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	return float64(wx), float64(wy)
}

// pickRadius converts the screen pick radius into world units.
func (g *Game) pickRadius() float64 {
	return float64(pickRadiusPx / g.camera.Zoom)
}

// overUI reports whether a screen point is covered by a panel or button.
func (g *Game) overUI(sx, sy float32) bool {
	return g.inspector.Contains(sx, sy) || g.hud.Contains(sx, sy)
}
