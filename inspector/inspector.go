// Package inspector draws a panel describing the selected creature.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/camera"
	"github.com/pthm-cable/critters/world"
)

// Panel dimensions
const (
	PanelWidth   = 320
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Inspector tracks the selected creature and renders its panel.
type Inspector struct {
	selected     ecs.Entity
	hasSelected  bool
	panelX       int32
	panelY       int32
	screenWidth  int32
	screenHeight int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	return &Inspector{
		panelX:       screenWidth - PanelWidth - 10,
		panelY:       10,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// Select makes e the inspected creature.
func (ins *Inspector) Select(e ecs.Entity) {
	ins.selected = e
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
	ins.selected = ecs.Entity{}
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Contains reports whether a screen point lies over the open panel.
func (ins *Inspector) Contains(sx, sy float32) bool {
	if !ins.hasSelected {
		return false
	}
	x, y := int32(sx), int32(sy)
	return x >= ins.panelX && x <= ins.panelX+PanelWidth &&
		y >= ins.panelY && y <= ins.panelY+ins.panelHeight()
}

// HandleClick closes the panel when its close button is hit.
// It reports whether the click was consumed by the panel.
func (ins *Inspector) HandleClick(sx, sy float32) bool {
	if !ins.Contains(sx, sy) {
		return false
	}
	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	if int32(sx) >= closeX && int32(sx) <= closeX+20 &&
		int32(sy) >= closeY && int32(sy) <= closeY+20 {
		ins.Deselect()
	}
	return true
}

// Draw renders the panel for the selected creature.
// A selection that has left the roster is dropped.
func (ins *Inspector) Draw(w *world.World) {
	if !ins.hasSelected {
		return
	}
	if !w.IsCreature(ins.selected) {
		ins.Deselect()
		return
	}
	pos, ident, needs, mind := w.Creature(ins.selected)

	panelHeight := ins.panelHeight()
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	y = ins.drawSection(x, y, "IDENTITY", ident)
	y += DrawLabel(x, y, "Position", fmt.Sprintf("(%.0f, %.0f)", pos.X, pos.Y), nil)
	y = ins.drawSection(x, y+4, "NEEDS", needs)
	y = ins.drawSection(x, y+4, "MIND", mind)

	if mind.HasPartner() && w.IsCreature(mind.Partner) {
		_, partner, _, _ := w.Creature(mind.Partner)
		DrawLabel(x, y, "Partner", partner.Name, nil)
	} else {
		rl.DrawText("(no partner)", x, y, 12, ColorLabelDim)
	}
}

// drawSection renders a titled block of reflected component fields.
func (ins *Inspector) drawSection(x, y int32, title string, component interface{}) int32 {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
	y += 20
	for _, f := range ExtractFields(component) {
		y += DrawField(x, y, f)
	}
	return y
}

func (ins *Inspector) panelHeight() int32 {
	height := int32(HeaderHeight + PanelPadding)
	height += 20 + 2*20 // identity
	height += 20        // position
	height += 24 + 4*18 // needs
	height += 24 + 20 + 2*18
	height += 20 // partner
	height += PanelPadding
	return height
}

// DrawSelectionHighlight circles the selected creature and its vision radius.
func (ins *Inspector) DrawSelectionHighlight(w *world.World, cam *camera.Camera, visionRadius float64) {
	if !ins.hasSelected || !w.IsCreature(ins.selected) {
		return
	}
	pos, _, _, mind := w.Creature(ins.selected)

	sx, sy := cam.WorldToScreen(float32(pos.X), float32(pos.Y))
	center := rl.Vector2{X: sx, Y: sy}
	rl.DrawCircleLinesV(center, 8*cam.Zoom, rl.Yellow)
	rl.DrawCircleLinesV(center, float32(visionRadius)*cam.Zoom, rl.Color{R: 200, G: 200, B: 200, A: 60})

	if mind.HasPartner() && w.IsCreature(mind.Partner) {
		ppos, _, _, _ := w.Creature(mind.Partner)
		px, py := cam.WorldToScreen(float32(ppos.X), float32(ppos.Y))
		rl.DrawLineV(center, rl.Vector2{X: px, Y: py}, rl.Pink)
	}
}
