// Package game wires the aquarium together: the ECS world, the water,
// the jellies and bubbles, input, rendering and telemetry.
package game

import (
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/camera"
	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/inspector"
	"github.com/pthm-cable/aquarium/jellyfish"
	"github.com/pthm-cable/aquarium/locomotion"
	"github.com/pthm-cable/aquarium/renderer"
	"github.com/pthm-cable/aquarium/systems"
	"github.com/pthm-cable/aquarium/telemetry"
	"github.com/pthm-cable/aquarium/ui"
	"github.com/pthm-cable/aquarium/water"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	MeasureStretch bool // scan constraint error every frame
}

// surfacing is a surfacing event queued during the swim update.
type surfacing struct {
	entity ecs.Entity
	at     mgl64.Vec3
}

// Game holds the complete aquarium state.
type Game struct {
	cfg     *config.Config
	world   *ecs.World
	rng     *rand.Rand
	rngSeed int64

	jellyMapper *ecs.Map3[components.Jelly, components.Position, components.Swim]
	jellyFilter *ecs.Filter3[components.Jelly, components.Position, components.Swim]
	jellyMap    *ecs.Map1[components.Jelly]
	swimMap     *ecs.Map1[components.Swim]
	posMap      *ecs.Map1[components.Position]

	bubbleFilter *ecs.Filter3[components.Bubble, components.Position, components.Scale]

	// Jellies in config order
	jellies []ecs.Entity

	// Environment
	water   *water.HeightField
	surface water.Surface
	rain    *water.Rain

	// Systems
	swim     *systems.SwimSystem
	bubbles  *systems.BubbleSystem
	registry *systems.SystemRegistry

	pending []surfacing

	// Rendering (nil when headless)
	camera             *camera.Camera
	backgroundRenderer *renderer.BackgroundRenderer
	lightRenderer      *renderer.LightRenderer
	waterRenderer      *renderer.WaterRenderer
	poolRenderer       *renderer.PoolRenderer
	jellyRenderer      *renderer.JellyRenderer
	particleRenderer   *renderer.ParticleRenderer

	// UI
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	perfPanel *ui.PerfPanel
	overlays  *ui.OverlayRegistry
	inspector *inspector.Inspector

	// Picking
	hovered    ecs.Entity
	hasHovered bool
	drag       dragState

	// State
	tick           int32
	simTime        float64
	paused         bool
	timeScale      float32
	stepsPerUpdate int
	headless       bool
	screenWidth    float32
	screenHeight   float32

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
}

// NewGameWithOptions creates a game from the global config.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:            cfg,
		world:          world,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		rngSeed:        opts.Seed,
		jellyMapper:    ecs.NewMap3[components.Jelly, components.Position, components.Swim](world),
		jellyFilter:    ecs.NewFilter3[components.Jelly, components.Position, components.Swim](world),
		jellyMap:       ecs.NewMap1[components.Jelly](world),
		swimMap:        ecs.NewMap1[components.Swim](world),
		posMap:         ecs.NewMap1[components.Position](world),
		bubbleFilter:   ecs.NewFilter3[components.Bubble, components.Position, components.Scale](world),
		surface:        cfg.WaterSurface(),
		timeScale:      1,
		stepsPerUpdate: opts.StepsPerUpdate,
		headless:       opts.Headless,
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
		collector:      telemetry.NewCollector(statsWindow),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
		registry:       systems.NewSystemRegistry(),
	}

	// Water
	g.water = water.New(cfg.WaterParams())
	g.rain = &water.Rain{Interval: cfg.Water.AutoDropInterval, Enabled: cfg.Water.AutoDrops}

	// Systems
	g.swim = systems.NewSwimSystem(world)
	g.swim.MeasureStretch = opts.MeasureStretch
	if cfg.Bubbles.Enabled {
		g.bubbles = systems.NewBubbleSystem(world, systems.BubbleParams{
			Interval:       cfg.Bubbles.SpawnInterval,
			Count:          cfg.Bubbles.SpawnCount,
			Size:           cfg.Bubbles.SizeRange,
			Rise:           cfg.Bubbles.RiseSpeed,
			WobbleStrength: cfg.Bubbles.WobbleStrength,
			SurfaceY:       cfg.Bubbles.SurfaceY,
			Colors:         len(cfg.Derived.BubbleColors),
		}, g.surface, dropTap{g, telemetry.DropBubble}, g.rng)
	}

	g.spawnJellies()

	// Output
	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	if !opts.Headless {
		g.initGraphics()
	}

	return g
}

// initGraphics creates the camera, renderers and UI. The window must exist.
func (g *Game) initGraphics() {
	cfg := g.cfg
	cc := cfg.Camera
	g.camera = camera.New(
		camera.Vec3{X: float32(cc.Target[0]), Y: float32(cc.Target[1]), Z: float32(cc.Target[2])},
		camera.Vec3{X: float32(cc.Position[0]), Y: float32(cc.Position[1]), Z: float32(cc.Position[2])},
		float32(cc.Fovy), float32(cc.FloorY), float32(cc.MinDist), float32(cc.MaxDist),
	)

	w, h := int32(g.screenWidth), int32(g.screenHeight)
	g.backgroundRenderer = renderer.NewBackgroundRenderer(w, h, 30, 70, 100)
	g.lightRenderer = renderer.NewLightRenderer(g.surface)
	g.waterRenderer = renderer.NewWaterRenderer(g.surface, cfg.Water.SurfaceY, float64(cfg.WaterParams().RestHeight))
	g.poolRenderer = renderer.NewPoolRenderer(g.surface, cfg.Water.WallHeight, cfg.Water.SurfaceY)
	g.jellyRenderer = renderer.NewJellyRenderer()
	g.particleRenderer = renderer.NewParticleRenderer(cfg.Derived.BubbleColors)

	g.overlays = ui.NewOverlayRegistry()
	g.hud = ui.NewHUD()
	g.controls = ui.NewControlsPanel(10, 110, 220)
	g.perfPanel = ui.NewPerfPanel(w-250, h-150)
	g.inspector = inspector.NewInspector(w, h)
}

// spawnJellies creates one entity per configured jelly. Each creature gets
// its own random source so adding a jelly does not reshuffle the others.
func (g *Game) spawnJellies() {
	cfg := g.cfg
	swimParams := cfg.SwimParams()
	bodyParams := cfg.BodyParams()

	for i, jc := range cfg.Jellies {
		rng := rand.New(rand.NewSource(g.rngSeed + int64(i) + 1))
		ctrl := locomotion.New(swimParams, jc.Spawn(), rng)
		creature := jellyfish.New(bodyParams, ctrl, cfg.Derived.Palettes[i])

		p := ctrl.Position()
		jelly := components.Jelly{Creature: creature, Index: i, Name: jc.Name, Route: jc.Route}
		pos := components.Position{X: float32(p.X()), Y: float32(p.Y()), Z: float32(p.Z())}
		swim := components.Swim{}
		e := g.jellyMapper.NewEntity(&jelly, &pos, &swim)

		ctrl.OnSurface(func(at mgl64.Vec3) {
			g.pending = append(g.pending, surfacing{entity: e, at: at})
		})
		g.jellies = append(g.jellies, e)
	}
}

// SurfaceJelly starts a surfacing episode for the jelly at index i.
func (g *Game) SurfaceJelly(i int) {
	if i < 0 || i >= len(g.jellies) {
		return
	}
	g.jellyMap.Get(g.jellies[i]).Creature.Surface()
}

// SurfaceRoute starts a surfacing episode for the jelly bound to route.
func (g *Game) SurfaceRoute(route string) bool {
	i, ok := g.cfg.Derived.RouteIndex[route]
	if !ok {
		return false
	}
	g.SurfaceJelly(i)
	return true
}

// Unload releases resources and writes the final snapshot.
func (g *Game) Unload() {
	if g.outputManager != nil {
		g.saveSnapshot()
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
	if g.headless {
		return
	}
	g.backgroundRenderer.Unload()
	g.lightRenderer.Unload()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimTime returns the simulated time in seconds.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// camera3D converts the orbit camera for raylib.
func (g *Game) camera3D() rl.Camera3D {
	eye := g.camera.Eye()
	t := g.camera.Target
	return rl.Camera3D{
		Position:   rl.Vector3{X: eye.X, Y: eye.Y, Z: eye.Z},
		Target:     rl.Vector3{X: t.X, Y: t.Y, Z: t.Z},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       g.camera.Fovy,
		Projection: rl.CameraPerspective,
	}
}
