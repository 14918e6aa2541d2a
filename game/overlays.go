package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/ui"
)

var (
	colorVision  = rl.Color{R: 200, G: 200, B: 200, A: 40}
	colorPartner = rl.Color{R: 255, G: 120, B: 200, A: 160}
	colorLabel   = rl.Color{R: 230, G: 230, B: 230, A: 200}
)

// handleOverlayKeys checks for overlay toggle key presses.
func (g *Game) handleOverlayKeys() {
	for _, key := range g.overlays.Keys() {
		if rl.IsKeyPressed(key) {
			g.overlays.HandleKeyPress(key)
		}
	}
}

// drawActiveOverlays renders the world-space overlays drawn beneath creatures.
func (g *Game) drawActiveOverlays() {
	for _, id := range g.overlays.EnabledOverlays() {
		switch id {
		case ui.OverlayVision:
			g.drawVisionRadii()
		case ui.OverlayPartnerLinks:
			g.drawPartnerLinks()
		}
	}
}

// drawActiveLabels renders text overlays above creatures.
func (g *Game) drawActiveLabels() {
	switch {
	case g.overlays.IsEnabled(ui.OverlayActionLabels):
		g.drawCreatureLabels(func(_ *components.Identity, mind *components.Mind) string {
			return mind.Action.String()
		})
	case g.overlays.IsEnabled(ui.OverlayNames):
		g.drawCreatureLabels(func(ident *components.Identity, _ *components.Mind) string {
			return ident.Name
		})
	}
}

// drawVisionRadii outlines every creature's vision radius.
func (g *Game) drawVisionRadii() {
	radius := float32(g.cfg.Perception.VisionRadius)
	g.sim.World().EachCreature(func(_ ecs.Entity, pos *components.Position, _ *components.Identity, _ *components.Needs, _ *components.Mind) {
		if !g.camera.IsVisible(float32(pos.X), float32(pos.Y), radius) {
			return
		}
		sx, sy := g.camera.WorldToScreen(float32(pos.X), float32(pos.Y))
		rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, radius*g.camera.Zoom, colorVision)
	})
}

// drawPartnerLinks connects each engaged creature to its partner.
// Each pair is drawn once, from the side met first in the roster.
func (g *Game) drawPartnerLinks() {
	w := g.sim.World()
	w.EachCreature(func(e ecs.Entity, pos *components.Position, _ *components.Identity, _ *components.Needs, mind *components.Mind) {
		if !mind.Engaged || !w.IsCreature(mind.Partner) || mind.Partner.ID() < e.ID() {
			return
		}
		ppos, _, _, _ := w.Creature(mind.Partner)
		ax, ay := g.camera.WorldToScreen(float32(pos.X), float32(pos.Y))
		bx, by := g.camera.WorldToScreen(float32(ppos.X), float32(ppos.Y))
		rl.DrawLineEx(rl.Vector2{X: ax, Y: ay}, rl.Vector2{X: bx, Y: by}, 1.5, colorPartner)
	})
}

func (g *Game) drawCreatureLabels(text func(*components.Identity, *components.Mind) string) {
	g.sim.World().EachCreature(func(_ ecs.Entity, pos *components.Position, ident *components.Identity, _ *components.Needs, mind *components.Mind) {
		if !g.camera.IsVisible(float32(pos.X), float32(pos.Y), 0) {
			return
		}
		sx, sy := g.camera.WorldToScreen(float32(pos.X), float32(pos.Y))
		rl.DrawText(text(ident, mind), int32(sx)+6, int32(sy)-14, 10, colorLabel)
	})
}
