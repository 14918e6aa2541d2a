package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HoveredCreature holds data about the creature under the cursor.
type HoveredCreature struct {
	Name   string
	Action string
	Energy float64
	Age    float64
}

// findCreatureAtMouse returns the creature under the mouse cursor, if any.
func (g *Game) findCreatureAtMouse() (HoveredCreature, bool) {
	mouse := rl.GetMousePosition()
	if g.overUI(mouse.X, mouse.Y) {
		return HoveredCreature{}, false
	}

	wx, wy := g.mouseWorld()
	e, ok := g.sim.World().CreatureAt(wx, wy, g.pickRadius())
	if !ok {
		return HoveredCreature{}, false
	}

	_, ident, needs, mind := g.sim.World().Creature(e)
	return HoveredCreature{
		Name:   ident.Name,
		Action: mind.Action.String(),
		Energy: needs.Energy,
		Age:    needs.Age,
	}, true
}

// drawTooltip draws a hover tooltip for the creature under the mouse.
func (g *Game) drawTooltip() {
	hovered, ok := g.findCreatureAtMouse()
	if !ok {
		return
	}

	lines := []string{
		hovered.Name,
		fmt.Sprintf("Action: %s", hovered.Action),
		fmt.Sprintf("Energy: %.1f  Age: %.0f", hovered.Energy, hovered.Age),
	}

	const fontSize, padding, lineHeight = 12, 6, 14
	width := int32(0)
	for _, line := range lines {
		width = max(width, rl.MeasureText(line, fontSize))
	}
	height := int32(len(lines))*lineHeight + 2*padding

	mouse := rl.GetMousePosition()
	x := int32(mouse.X) + 14
	y := int32(mouse.Y) + 14
	if x+width+2*padding > int32(g.screenWidth) {
		x = int32(mouse.X) - width - 2*padding - 4
	}
	if y+height > int32(g.screenHeight) {
		y = int32(mouse.Y) - height - 4
	}

	rl.DrawRectangle(x, y, width+2*padding, height, rl.Color{R: 20, G: 20, B: 25, A: 220})
	for i, line := range lines {
		color := rl.LightGray
		if i == 0 {
			color = rl.White
		}
		rl.DrawText(line, x+padding, y+padding+int32(i)*lineHeight, fontSize, color)
	}
}
