package yule

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned (wrapped) by Validate and LoadConfig when a
// value is outside its usable range.
var ErrInvalidConfig = errors.New("invalid config")

// TreeConfig shapes the cone-spiral particle field.
type TreeConfig struct {
	// ParticleCount is the number of spiral particles; the star is extra.
	ParticleCount int `yaml:"particle_count"`
	// SpiralLoops is the number of full turns from apex to base.
	SpiralLoops float64 `yaml:"spiral_loops"`
	// HeightFraction of the surface height, capped at MaxHeight.
	HeightFraction float64 `yaml:"height_fraction"`
	MaxHeight      float64 `yaml:"max_height"`
	// RadiusFraction of the surface width, capped at MaxRadius.
	RadiusFraction float64 `yaml:"radius_fraction"`
	MaxRadius      float64 `yaml:"max_radius"`
	// Jitter is the full width of the random x/z offset.
	Jitter float64 `yaml:"jitter"`
	// OrnamentChance is the probability a particle is a light.
	OrnamentChance float64 `yaml:"ornament_chance"`
	OrnamentRadius Range   `yaml:"ornament_radius"`
	FoliageRadius  Range   `yaml:"foliage_radius"`
	Alpha          Range   `yaml:"alpha"`
	// StarOffset lifts the star above the apex.
	StarOffset float64 `yaml:"star_offset"`
	StarRadius float64 `yaml:"star_radius"`
}

// FireworkConfig controls rocket launches, bursts and spark physics.
type FireworkConfig struct {
	// LaunchChance is the per-frame probability of a new rocket.
	LaunchChance float64 `yaml:"launch_chance"`
	// SparkCap blocks launches while this many sparks are alive. Zero disables the cap.
	SparkCap int `yaml:"spark_cap"`
	// LaunchSpread is the width fraction of the horizontal launch band.
	LaunchSpread float64 `yaml:"launch_spread"`
	// LaunchDepth is how far below the bottom edge rockets start.
	LaunchDepth float64 `yaml:"launch_depth"`
	// TargetBand is the detonation band as fractions of the surface height.
	TargetBand  Range   `yaml:"target_band"`
	RocketSpeed Range   `yaml:"rocket_speed"`
	RocketWidth float64 `yaml:"rocket_width"`
	// BurstCount is the inclusive range of sparks per detonation.
	BurstMin    int     `yaml:"burst_min"`
	BurstMax    int     `yaml:"burst_max"`
	SparkSpeed  float64 `yaml:"spark_speed"`
	HueVariance float64 `yaml:"hue_variance"`
	Saturation  Range   `yaml:"saturation"`
	Lightness   Range   `yaml:"lightness"`
	Decay       Range   `yaml:"decay"`
	// Drag multiplies spark velocity each frame.
	Drag    float64 `yaml:"drag"`
	Gravity float64 `yaml:"gravity"`
	// LightnessFloor and Cooling model embers dimming toward red.
	LightnessFloor float64 `yaml:"lightness_floor"`
	Cooling        float64 `yaml:"cooling"`
	SparkWidth     float64 `yaml:"spark_width"`
	MinSparkWidth  float64 `yaml:"min_spark_width"`
}

// CameraConfig controls rotation and projection of the tree.
type CameraConfig struct {
	FocalLength float64 `yaml:"focal_length"`
	// OffsetY moves the tree center below the surface center.
	OffsetY float64 `yaml:"offset_y"`
	// AutoRotate is the per-frame angle increment without a pointer.
	AutoRotate float64 `yaml:"auto_rotate"`
	// PointerGain converts pointer offset from center into a target angle.
	PointerGain float64 `yaml:"pointer_gain"`
	// Easing is the single-pole filter coefficient toward the target angle.
	Easing float64 `yaml:"easing"`
}

// TwinkleConfig controls the time-driven opacity oscillation.
type TwinkleConfig struct {
	LightSpeed   float64 `yaml:"light_speed"`
	LightPhase   float64 `yaml:"light_phase"`
	LightBase    float64 `yaml:"light_base"`
	LightDepth   float64 `yaml:"light_depth"`
	FoliageSpeed float64 `yaml:"foliage_speed"`
	FoliagePhase float64 `yaml:"foliage_phase"`
	FoliageDepth float64 `yaml:"foliage_depth"`
}

// GlowConfig sets blur radii before projection scaling.
type GlowConfig struct {
	Star  float64 `yaml:"star"`
	Light float64 `yaml:"light"`
}

// IntroConfig fades the tree layer in after start-up.
type IntroConfig struct {
	// Duration in seconds. Zero disables the fade.
	Duration float64 `yaml:"duration"`
}

// Config holds every tunable of the scene.
type Config struct {
	Tree      TreeConfig     `yaml:"tree"`
	Fireworks FireworkConfig `yaml:"fireworks"`
	Camera    CameraConfig   `yaml:"camera"`
	Twinkle   TwinkleConfig  `yaml:"twinkle"`
	Glow      GlowConfig     `yaml:"glow"`
	Intro     IntroConfig    `yaml:"intro"`
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		Tree: TreeConfig{
			ParticleCount:  1200,
			SpiralLoops:    15,
			HeightFraction: 0.7,
			MaxHeight:      600,
			RadiusFraction: 0.35,
			MaxRadius:      250,
			Jitter:         10,
			OrnamentChance: 0.1,
			OrnamentRadius: Range{2, 5},
			FoliageRadius:  Range{1, 3},
			Alpha:          Range{0.4, 1.0},
			StarOffset:     15,
			StarRadius:     12,
		},
		Fireworks: FireworkConfig{
			LaunchChance:   0.015,
			SparkCap:       2500,
			LaunchSpread:   0.5,
			LaunchDepth:    20,
			TargetBand:     Range{0.15, 0.35},
			RocketSpeed:    Range{15, 20},
			RocketWidth:    3,
			BurstMin:       800,
			BurstMax:       1200,
			SparkSpeed:     22,
			HueVariance:    30,
			Saturation:     Range{80, 100},
			Lightness:      Range{60, 100},
			Decay:          Range{0.005, 0.02},
			Drag:           0.92,
			Gravity:        0.08,
			LightnessFloor: 40,
			Cooling:        0.5,
			SparkWidth:     2.5,
			MinSparkWidth:  0.1,
		},
		Camera: CameraConfig{
			FocalLength: 800,
			OffsetY:     100,
			AutoRotate:  0.005,
			PointerGain: 0.002,
			Easing:      0.05,
		},
		Twinkle: TwinkleConfig{
			LightSpeed:   0.003,
			LightPhase:   0.05,
			LightBase:    0.8,
			LightDepth:   0.2,
			FoliageSpeed: 0.005,
			FoliagePhase: 0.1,
			FoliageDepth: 0.2,
		},
		Glow: GlowConfig{
			Star:  50,
			Light: 20,
		},
		Intro: IntroConfig{
			Duration: 1.5,
		},
	}
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	switch {
	case c.Tree.ParticleCount < 0:
		return fmt.Errorf("%w: tree.particle_count %d < 0", ErrInvalidConfig, c.Tree.ParticleCount)
	case c.Tree.OrnamentChance < 0 || c.Tree.OrnamentChance > 1:
		return fmt.Errorf("%w: tree.ornament_chance %v outside [0, 1]", ErrInvalidConfig, c.Tree.OrnamentChance)
	case c.Tree.OrnamentRadius.Min > c.Tree.OrnamentRadius.Max,
		c.Tree.FoliageRadius.Min > c.Tree.FoliageRadius.Max,
		c.Tree.Alpha.Min > c.Tree.Alpha.Max:
		return fmt.Errorf("%w: tree ranges must have min <= max", ErrInvalidConfig)
	case c.Fireworks.LaunchChance < 0 || c.Fireworks.LaunchChance > 1:
		return fmt.Errorf("%w: fireworks.launch_chance %v outside [0, 1]", ErrInvalidConfig, c.Fireworks.LaunchChance)
	case c.Fireworks.SparkCap < 0:
		return fmt.Errorf("%w: fireworks.spark_cap %d < 0", ErrInvalidConfig, c.Fireworks.SparkCap)
	case c.Fireworks.BurstMin < 0 || c.Fireworks.BurstMin > c.Fireworks.BurstMax:
		return fmt.Errorf("%w: fireworks burst range [%d, %d]", ErrInvalidConfig, c.Fireworks.BurstMin, c.Fireworks.BurstMax)
	case c.Fireworks.LaunchDepth < 0:
		return fmt.Errorf("%w: fireworks.launch_depth %v < 0", ErrInvalidConfig, c.Fireworks.LaunchDepth)
	case c.Fireworks.TargetBand.Min < 0 || c.Fireworks.TargetBand.Min > c.Fireworks.TargetBand.Max ||
		c.Fireworks.TargetBand.Max > 1:
		return fmt.Errorf("%w: fireworks.target_band [%v, %v] outside [0, 1]", ErrInvalidConfig,
			c.Fireworks.TargetBand.Min, c.Fireworks.TargetBand.Max)
	case c.Fireworks.TargetBand.Min == 1 && c.Fireworks.LaunchDepth == 0:
		return fmt.Errorf("%w: fireworks.target_band at the bottom edge needs launch_depth > 0", ErrInvalidConfig)
	case c.Fireworks.RocketSpeed.Min <= 0 || c.Fireworks.RocketSpeed.Min > c.Fireworks.RocketSpeed.Max:
		return fmt.Errorf("%w: fireworks.rocket_speed must be positive with min <= max", ErrInvalidConfig)
	case c.Fireworks.Decay.Min <= 0 || c.Fireworks.Decay.Min > c.Fireworks.Decay.Max:
		return fmt.Errorf("%w: fireworks.decay must be positive with min <= max", ErrInvalidConfig)
	case c.Fireworks.Drag <= 0 || c.Fireworks.Drag >= 1:
		return fmt.Errorf("%w: fireworks.drag %v outside (0, 1)", ErrInvalidConfig, c.Fireworks.Drag)
	case c.Camera.FocalLength <= 0:
		return fmt.Errorf("%w: camera.focal_length %v <= 0", ErrInvalidConfig, c.Camera.FocalLength)
	case c.Camera.Easing < 0 || c.Camera.Easing > 1:
		return fmt.Errorf("%w: camera.easing %v outside [0, 1]", ErrInvalidConfig, c.Camera.Easing)
	case c.Intro.Duration < 0:
		return fmt.Errorf("%w: intro.duration %v < 0", ErrInvalidConfig, c.Intro.Duration)
	}
	return nil
}

// ParseConfig decodes YAML on top of DefaultConfig, so a file only needs
// the keys it changes, and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
