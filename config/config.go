// Package config provides configuration loading and access for the aquarium.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/aquarium/jellyfish"
	"github.com/pthm-cable/aquarium/locomotion"
	"github.com/pthm-cable/aquarium/water"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all aquarium configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Swim      SwimConfig      `yaml:"swim"`
	Bounds    BoundsConfig    `yaml:"bounds"`
	Water     WaterConfig     `yaml:"water"`
	Bubbles   BubblesConfig   `yaml:"bubbles"`
	Jellies   []JellyConfig   `yaml:"jellies"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds soft body stepping parameters.
type PhysicsConfig struct {
	DT                float64 `yaml:"dt"`           // fixed step for headless runs
	MaxFrameDT        float64 `yaml:"max_frame_dt"` // frame delta clamp
	Iterations        int     `yaml:"iterations"`
	VelocityRetention float64 `yaml:"velocity_retention"` // per second
	TentacleDrag      float64 `yaml:"tentacle_drag"`
	Scale             float64 `yaml:"scale"` // body units to scene units
	HoverDuration     float64 `yaml:"hover_duration"`
}

// SwimConfig holds the pulse and steering parameters.
type SwimConfig struct {
	Period         float64 `yaml:"period"`
	ExpandRatio    float64 `yaml:"expand_ratio"`
	ThrustFactor   float64 `yaml:"thrust_factor"`
	Gravity        float64 `yaml:"gravity"`
	TurnSpeed      float64 `yaml:"turn_speed"`
	WanderMin      float64 `yaml:"wander_min"`
	WanderMax      float64 `yaml:"wander_max"`
	DragContract   float64 `yaml:"drag_contract"`
	DragExpand     float64 `yaml:"drag_expand"`
	SurfacingAccel float64 `yaml:"surfacing_accel"`
	OrientRate     float64 `yaml:"orient_rate"`
	ClickImpulse   float64 `yaml:"click_impulse"`
	HitDecay       float64 `yaml:"hit_decay"`
	HitStrength    float64 `yaml:"hit_strength"`
}

// BoundsConfig holds the swim volume.
type BoundsConfig struct {
	XZ            float64 `yaml:"xz"`
	YMin          float64 `yaml:"y_min"`
	YMax          float64 `yaml:"y_max"`
	Repel         float64 `yaml:"repel"`
	SurfaceY      float64 `yaml:"surface_y"`       // swim height that ends surfacing
	WorldSurfaceY float64 `yaml:"world_surface_y"` // reported surface height
}

// DropConfig is a drop radius and strength in simulation units.
type DropConfig struct {
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
}

// WaterConfig holds the ripple simulation and its placement.
type WaterConfig struct {
	Origin           [3]float64 `yaml:"origin"`
	Size             float64    `yaml:"size"`
	Resolution       int        `yaml:"resolution"`
	SurfaceY         float64    `yaml:"surface_y"`
	WallHeight       float64    `yaml:"wall_height"`
	Damping          float64    `yaml:"damping"`
	AutoDrops        bool       `yaml:"auto_drops"`
	AutoDropInterval float64    `yaml:"auto_drop_interval"`
	SurfaceDrop      DropConfig `yaml:"surface_drop"`
}

// BubblesConfig holds the rising bubble spawner.
type BubblesConfig struct {
	Enabled        bool       `yaml:"enabled"`
	SpawnInterval  float64    `yaml:"spawn_interval"`
	SpawnCount     [2]int     `yaml:"spawn_count"`
	SizeRange      [2]float64 `yaml:"size_range"`
	RiseSpeed      [2]float64 `yaml:"rise_speed"`
	WobbleStrength float64    `yaml:"wobble_strength"`
	SurfaceY       float64    `yaml:"surface_y"`
	Colors         []string   `yaml:"colors"`
}

// JellyConfig describes one jellyfish in the tank.
type JellyConfig struct {
	Name          string     `yaml:"name"`
	Route         string     `yaml:"route"`
	Color         string     `yaml:"color"`
	DiffuseB      string     `yaml:"diffuse_b"`
	Faint         string     `yaml:"faint"`
	HoverColor    string     `yaml:"hover_color"`
	HoverDiffuseB string     `yaml:"hover_diffuse_b"`
	HoverFaint    string     `yaml:"hover_faint"`
	Angle         float64    `yaml:"angle"`
	Position      [3]float64 `yaml:"position"`
}

// CameraConfig holds the orbit camera.
type CameraConfig struct {
	Target   [3]float64 `yaml:"target"`
	Position [3]float64 `yaml:"position"`
	Fovy     float64    `yaml:"fovy"`
	FloorY   float64    `yaml:"floor_y"`
	MinDist  float64    `yaml:"min_distance"`
	MaxDist  float64    `yaml:"max_distance"`
}

// TelemetryConfig holds telemetry settings.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32    float32 // Screen.Width as float32
	ScreenH32    float32 // Screen.Height as float32
	WaterOrigin  mgl64.Vec3
	Palettes     []jellyfish.Palette // one per jelly
	BubbleColors []jellyfish.Color
	RouteIndex   map[string]int // route -> jelly index
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every out-of-range value at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(bad bool, format string, args ...any) {
		if bad {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.Swim.Period <= 0, "swim.period must be positive, got %v", c.Swim.Period)
	check(c.Swim.ExpandRatio <= 0 || c.Swim.ExpandRatio >= 1,
		"swim.expand_ratio must be in (0, 1), got %v", c.Swim.ExpandRatio)
	check(c.Swim.WanderMin > c.Swim.WanderMax,
		"swim.wander_min %v exceeds wander_max %v", c.Swim.WanderMin, c.Swim.WanderMax)
	check(c.Bounds.YMin >= c.Bounds.YMax,
		"bounds.y_min %v must be below y_max %v", c.Bounds.YMin, c.Bounds.YMax)
	check(c.Water.Size <= 0, "water.size must be positive, got %v", c.Water.Size)
	check(c.Water.Resolution < 4, "water.resolution must be at least 4, got %d", c.Water.Resolution)
	check(c.Physics.MaxFrameDT <= 0, "physics.max_frame_dt must be positive, got %v", c.Physics.MaxFrameDT)
	check(c.Physics.Iterations < 1, "physics.iterations must be at least 1, got %d", c.Physics.Iterations)
	check(c.Bubbles.SpawnCount[0] > c.Bubbles.SpawnCount[1],
		"bubbles.spawn_count %v is not a range", c.Bubbles.SpawnCount)
	check(len(c.Jellies) == 0, "at least one jelly is required")
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.WaterOrigin = mgl64.Vec3(c.Water.Origin)

	def := jellyfish.DefaultPalette()
	c.Derived.Palettes = make([]jellyfish.Palette, len(c.Jellies))
	c.Derived.RouteIndex = make(map[string]int, len(c.Jellies))
	for i, j := range c.Jellies {
		p := def
		var err error
		for _, f := range []struct {
			dst *jellyfish.Color
			src string
		}{
			{&p.Color, j.Color},
			{&p.DiffuseB, j.DiffuseB},
			{&p.Faint, j.Faint},
			{&p.Hover, j.HoverColor},
			{&p.HoverDiffuseB, j.HoverDiffuseB},
			{&p.HoverFaint, j.HoverFaint},
		} {
			if f.src == "" {
				continue
			}
			if *f.dst, err = ParseColor(f.src); err != nil {
				return fmt.Errorf("jelly %q: %w", j.Name, err)
			}
		}
		c.Derived.Palettes[i] = p
		c.Derived.RouteIndex[j.Route] = i
	}

	c.Derived.BubbleColors = c.Derived.BubbleColors[:0]
	for _, s := range c.Bubbles.Colors {
		col, err := ParseColor(s)
		if err != nil {
			return fmt.Errorf("bubble color: %w", err)
		}
		c.Derived.BubbleColors = append(c.Derived.BubbleColors, col)
	}
	return nil
}

// ParseColor parses a "#rrggbb" color.
func ParseColor(s string) (jellyfish.Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return jellyfish.Color{}, fmt.Errorf("parsing color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return jellyfish.Color{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	return jellyfish.Hex(uint32(v)), nil
}

// SwimParams converts the swim and bounds sections.
func (c *Config) SwimParams() locomotion.Params {
	return locomotion.Params{
		Period:         c.Swim.Period,
		ExpandRatio:    c.Swim.ExpandRatio,
		MaxDt:          c.Physics.MaxFrameDT,
		ThrustFactor:   c.Swim.ThrustFactor,
		DragContract:   c.Swim.DragContract,
		DragExpand:     c.Swim.DragExpand,
		Gravity:        c.Swim.Gravity,
		TurnSpeed:      c.Swim.TurnSpeed,
		WanderMin:      c.Swim.WanderMin,
		WanderMax:      c.Swim.WanderMax,
		SurfacingAccel: c.Swim.SurfacingAccel,
		SurfaceY:       c.Bounds.SurfaceY,
		WorldSurfaceY:  c.Bounds.WorldSurfaceY,
		BoundsXZ:       c.Bounds.XZ,
		BoundsYMin:     c.Bounds.YMin,
		BoundsYMax:     c.Bounds.YMax,
		Repel:          c.Bounds.Repel,
		OrientRate:     c.Swim.OrientRate,
		ClickImpulse:   c.Swim.ClickImpulse,
		HitStrength:    c.Swim.HitStrength,
		HitDecay:       c.Swim.HitDecay,
	}
}

// BodyParams converts the physics section.
func (c *Config) BodyParams() jellyfish.Params {
	return jellyfish.Params{
		Scale:             c.Physics.Scale,
		TentacleDrag:      c.Physics.TentacleDrag,
		VelocityRetention: c.Physics.VelocityRetention,
		HoverDuration:     c.Physics.HoverDuration,
		Iterations:        c.Physics.Iterations,
	}
}

// WaterParams converts the water section. Wave constants not exposed in
// the file keep their defaults.
func (c *Config) WaterParams() water.Params {
	p := water.DefaultParams()
	p.Resolution = c.Water.Resolution
	if c.Water.Damping > 0 {
		p.Damping = float32(c.Water.Damping)
	}
	return p
}

// WaterSurface places the height field in the scene.
func (c *Config) WaterSurface() water.Surface {
	return water.Surface{Origin: c.Derived.WaterOrigin, Size: c.Water.Size}
}

// Spawn returns where the jelly starts swimming.
func (j JellyConfig) Spawn() locomotion.Spawn {
	return locomotion.Spawn{Position: mgl64.Vec3(j.Position), Angle: j.Angle}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
