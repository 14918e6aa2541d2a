// Package game drives the simulation, headless or behind a raylib viewer.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/camera"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/inspector"
	"github.com/pthm-cable/critters/simulation"
	"github.com/pthm-cable/critters/systems"
	"github.com/pthm-cable/critters/telemetry"
	"github.com/pthm-cable/critters/ui"
)

// maxFrameDT bounds the frame time fed to a step, so a stalled window does
// not teleport every creature.
const maxFrameDT = 0.1

// Options holds game configuration options.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int          // Ticks per UpdateHeadless call
	Logger         *slog.Logger // nil means slog.Default()
}

// Game holds the simulation together with its telemetry and viewer state.
type Game struct {
	cfg    *config.Config
	logger *slog.Logger
	sim    *simulation.Simulation

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	sample    telemetry.PopulationSample
	logStats  bool

	// Viewer
	headless  bool
	camera    *camera.Camera
	inspector *inspector.Inspector
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	overlays  *ui.OverlayRegistry

	// State
	paused         bool
	speed          int // steps per frame in the viewer
	stepsPerUpdate int

	// Mouse drag state
	dragged  ecs.Entity
	dragging bool
	panning  bool

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game from cfg. The graphical variant expects
// the raylib window to exist already.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("setting up output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	collector := telemetry.NewCollector(statsWindow, cfg.Physics.DT)

	behavior := systems.NewBehaviorSystem(cfg, systems.NewBrain(cfg), collector, logger)
	sim := simulation.New(simulation.NewWorldFromConfig(cfg, rng), behavior, logger)

	perf := telemetry.NewPerfCollector(int(collector.WindowDurationTicks()))
	sim.SetPerf(perf)

	g := &Game{
		cfg:            cfg,
		logger:         logger,
		sim:            sim,
		collector:      collector,
		perf:           perf,
		output:         output,
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		speed:          1,
		stepsPerUpdate: stepsPerUpdate,
		screenWidth:    float32(cfg.Screen.Width),
		screenHeight:   float32(cfg.Screen.Height),
	}

	if !opts.Headless {
		g.camera = camera.New(g.screenWidth, g.screenHeight, float32(cfg.World.Width), float32(cfg.World.Height))
		g.inspector = inspector.NewInspector(int32(g.screenWidth), int32(g.screenHeight))
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-240, int32(g.screenHeight)-110)
		g.overlays = ui.NewOverlayRegistry()
	}

	if output != nil {
		logger.Info("writing output", "dir", output.Dir())
	}

	return g, nil
}

// step advances the simulation once and feeds telemetry.
func (g *Game) step(dt float64) {
	g.sim.Step(dt)
	if g.sim.LastStep().FoodSpawned {
		g.collector.RecordFoodSpawn()
	}
	g.flushTelemetry()
}

// UpdateHeadless runs StepsPerUpdate ticks with the configured fixed dt.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(g.cfg.Physics.DT)
	}
}

// Update processes input and runs speed ticks with the frame's dt.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	dt := float64(rl.GetFrameTime())
	if dt > maxFrameDT {
		dt = maxFrameDT
	}
	for i := 0; i < g.speed; i++ {
		g.step(dt)
	}
}

// Unload releases resources and closes output files.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		g.logger.Error("failed to close output", "error", err)
	}
}

// Tick returns the number of completed simulation steps.
func (g *Game) Tick() int32 {
	return g.sim.Tick()
}

// Simulation returns the underlying simulation.
func (g *Game) Simulation() *simulation.Simulation {
	return g.sim
}

// Paused reports whether the viewer is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Speed returns the number of steps per frame in the viewer.
func (g *Game) Speed() int {
	return g.speed
}

// TogglePause pauses or resumes the simulation.
func (g *Game) TogglePause() {
	g.paused = !g.paused
}

// SetSpeed sets the steps per frame, clamped to [1, max_steps_per_update].
func (g *Game) SetSpeed(speed int) {
	g.speed = max(1, min(speed, g.cfg.Physics.MaxStepsPerUpdate))
}
