// Package ui draws the viewer's heads-up display and tracks overlay toggles.
package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/critters/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Creatures int
	Engaged   int
	Food      int
	FoodCap   int
	Tick      int32
	Speed     int
	FPS       int32
	Paused    bool
}

// HUDAction is a request made through the HUD buttons.
type HUDAction int

const (
	HUDNone HUDAction = iota
	HUDTogglePause
	HUDSlower
	HUDFaster
)

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD and returns the button pressed this frame, if any.
func (h *HUD) Draw(data HUDData) HUDAction {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Creatures: %d | Engaged: %d | Food: %d/%d", data.Creatures, data.Engaged, data.Food, data.FoodCap),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Step: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)

	action := HUDNone
	if gui.Button(rl.Rectangle{X: 10, Y: 100, Width: 80, Height: 24}, toggleText(data.Paused, "Resume", "Pause")) {
		action = HUDTogglePause
	}
	if gui.Button(rl.Rectangle{X: 100, Y: 100, Width: 30, Height: 24}, "-") {
		action = HUDSlower
	}
	if gui.Button(rl.Rectangle{X: 140, Y: 100, Width: 30, Height: 24}, "+") {
		action = HUDFaster
	}
	return action
}

// Contains reports whether a screen point lies over the HUD buttons.
func (h *HUD) Contains(sx, sy float32) bool {
	return sx >= 10 && sx <= 170 && sy >= 100 && sy <= 124
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}

// PerfPanel renders step phase timings.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Step Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s", stats.AvgTick.Round(time.Microsecond), stats.MaxTick.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range telemetry.Phases() {
		avg := stats.Phases[name]
		pct := float64(0)
		if stats.AvgTick > 0 {
			pct = float64(avg) / float64(stats.AvgTick) * 100
		}

		color := rl.LightGray
		if pct > 60 {
			color = rl.Red
		} else if pct > 30 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
