package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"
	"maps"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ninja-engine/engine"
	"github.com/lixenwraith/ninja-engine/input"
	"github.com/lixenwraith/ninja-engine/terminal"
	"github.com/lixenwraith/ninja-engine/vmath"
)

// DefaultPath is the config file read when no -config flag is given
const DefaultPath = "engine.toml"

// Config is the engine configuration, read once at startup
type Config struct {
	Graphics GraphicsConfig `toml:"graphics"`
	Physics  PhysicsConfig  `toml:"physics"`
	Input    InputConfig    `toml:"input"`
	Audio    AudioConfig    `toml:"audio"`
	Debug    DebugConfig    `toml:"debug"`
	Game     GameConfig     `toml:"game"`
}

type GraphicsConfig struct {
	ScreenWidth   int     `toml:"screen_width"`  // Play area in cells, clipped to the terminal
	ScreenHeight  int     `toml:"screen_height"` // Play area in cells, clipped to the terminal
	TargetFPS     int     `toml:"target_fps"`
	GraphicsScale float64 `toml:"graphics_scale"`
	Title         string  `toml:"title"`
}

type PhysicsConfig struct {
	PhysicsFPS    int     `toml:"physics_fps"` // Fixed step = 1/physics_fps
	Interpolation bool    `toml:"interpolation"`
	GravityX      float64 `toml:"gravity_x"`
	GravityY      float64 `toml:"gravity_y"`
	MaxFrameTime  float64 `toml:"max_frame_time"` // Seconds, 0 = uncapped
	CheckTicking  bool    `toml:"check_ticking"`
}

type InputConfig struct {
	HoldMs  int                   `toml:"hold_ms"`
	Axes    map[string]AxisConfig `toml:"axes"`
	Actions map[string][]string   `toml:"actions"`
}

type AxisConfig struct {
	Positive []string `toml:"positive"`
	Negative []string `toml:"negative"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

type DebugConfig struct {
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

type GameConfig struct {
	AssetRoot   string  `toml:"asset_root"`
	PlayerImage string  `toml:"player_image"`
	ColorKey    string  `toml:"color_key"` // "#rrggbb", empty = none
	Background  string  `toml:"background"`
	MoveSpeed   float64 `toml:"move_speed"`   // Cells per second
	JumpImpulse float64 `toml:"jump_impulse"` // Cells per second, upward
}

// Default returns the stock configuration
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			ScreenWidth:   80,
			ScreenHeight:  24,
			TargetFPS:     60,
			GraphicsScale: 1,
			Title:         "ninja",
		},
		Physics: PhysicsConfig{
			PhysicsFPS:    60,
			Interpolation: true,
			GravityY:      60,
			MaxFrameTime:  0.25,
			CheckTicking:  true,
		},
		Input: InputConfig{
			HoldMs:  120,
			Axes:    defaultAxes(),
			Actions: defaultActions(),
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Debug: DebugConfig{
			LogLevel: "debug",
		},
		Game: GameConfig{
			AssetRoot:   "assets",
			PlayerImage: "images/ninja.png",
			ColorKey:    "#ff00ff",
			Background:  "#1e1e2e",
			MoveSpeed:   20,
			JumpImpulse: 30,
		},
	}
}

func defaultAxes() map[string]AxisConfig {
	return map[string]AxisConfig{
		"horizontal": {Positive: []string{"d", "right"}, Negative: []string{"a", "left"}},
	}
}

func defaultActions() map[string][]string {
	return map[string][]string{
		"jump":  {"space", "w", "up"},
		"pause": {"p"},
	}
}

// Load reads path; a missing file yields defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result
// Input axes and actions replace the defaults as a whole when present
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	cfg.Input.Axes = nil
	cfg.Input.Actions = nil

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	if !md.IsDefined("input", "axes") {
		cfg.Input.Axes = defaultAxes()
	}
	if !md.IsDefined("input", "actions") {
		cfg.Input.Actions = defaultActions()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting as a *engine.ConfigurationError
func (c *Config) Validate() error {
	var errs []error
	bad := func(field string, value any, reason string) {
		errs = append(errs, &engine.ConfigurationError{Field: field, Value: value, Reason: reason})
	}

	if c.Graphics.TargetFPS <= 0 {
		bad("graphics.target_fps", c.Graphics.TargetFPS, "must be greater than zero")
	}
	if c.Graphics.ScreenWidth <= 0 || c.Graphics.ScreenHeight <= 0 {
		bad("graphics.screen_size", fmt.Sprintf("%dx%d", c.Graphics.ScreenWidth, c.Graphics.ScreenHeight), "must be positive")
	}
	if !(c.Graphics.GraphicsScale > 0) || math.IsInf(c.Graphics.GraphicsScale, 0) {
		bad("graphics.graphics_scale", c.Graphics.GraphicsScale, "must be a finite value greater than zero")
	}
	if c.Physics.PhysicsFPS <= 0 {
		bad("physics.physics_fps", c.Physics.PhysicsFPS, "must be greater than zero")
	}
	if c.Physics.MaxFrameTime < 0 || math.IsNaN(c.Physics.MaxFrameTime) {
		bad("physics.max_frame_time", c.Physics.MaxFrameTime, "must not be negative")
	}
	if c.Input.HoldMs < 0 {
		bad("input.hold_ms", c.Input.HoldMs, "must not be negative")
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 || math.IsNaN(c.Audio.Volume) {
		bad("audio.volume", c.Audio.Volume, "must be within [0, 1]")
	}

	if _, err := c.LogLevel(); err != nil {
		bad("debug.log_level", c.Debug.LogLevel, "expected debug, info, warn or error")
	}
	if c.Game.MoveSpeed < 0 || c.Game.JumpImpulse < 0 {
		bad("game.speed", fmt.Sprintf("move=%g jump=%g", c.Game.MoveSpeed, c.Game.JumpImpulse), "must not be negative")
	}

	for _, name := range slices.Sorted(maps.Keys(c.Input.Axes)) {
		axis := c.Input.Axes[name]
		if len(axis.Positive) == 0 && len(axis.Negative) == 0 {
			bad("input.axes."+name, "", "axis has no keys")
		}
		for _, k := range append(slices.Clone(axis.Positive), axis.Negative...) {
			if !terminal.IsKnownKey(k) {
				bad("input.axes."+name, k, "unknown key name")
			}
		}
	}
	for _, name := range slices.Sorted(maps.Keys(c.Input.Actions)) {
		for _, k := range c.Input.Actions[name] {
			if !terminal.IsKnownKey(k) {
				bad("input.actions."+name, k, "unknown key name")
			}
		}
	}

	if c.Game.ColorKey != "" {
		if _, err := ParseHexColor(c.Game.ColorKey); err != nil {
			bad("game.color_key", c.Game.ColorKey, err.Error())
		}
	}
	if _, err := ParseHexColor(c.Game.Background); err != nil {
		bad("game.background", c.Game.Background, err.Error())
	}

	return errors.Join(errs...)
}

// EngineSettings converts to the frame loop settings
func (c *Config) EngineSettings() engine.Settings {
	return engine.Settings{
		TargetFPS:      c.Graphics.TargetFPS,
		FixedDeltaTime: 1.0 / float64(c.Physics.PhysicsFPS),
		Interpolation:  c.Physics.Interpolation,
		MaxFrameTime:   c.Physics.MaxFrameTime,
		CheckTicking:   c.Physics.CheckTicking,
		Title:          c.Graphics.Title,
	}
}

// InputMapping converts the key tables for the input router
func (c *Config) InputMapping() input.Mapping {
	m := input.Mapping{
		Axes:    make(map[string]input.AxisMapping, len(c.Input.Axes)),
		Actions: make(map[string][]string, len(c.Input.Actions)),
	}
	for name, a := range c.Input.Axes {
		m.Axes[name] = input.AxisMapping{Positive: slices.Clone(a.Positive), Negative: slices.Clone(a.Negative)}
	}
	for name, keys := range c.Input.Actions {
		m.Actions[name] = slices.Clone(keys)
	}
	return m
}

// Gravity returns the physics gravity vector
func (c *Config) Gravity() vmath.Vec2 {
	return vmath.V2(c.Physics.GravityX, c.Physics.GravityY)
}

// HoldWindow returns the terminal key hold window
func (c *Config) HoldWindow() time.Duration {
	return time.Duration(c.Input.HoldMs) * time.Millisecond
}

// LogLevel parses debug.log_level, empty means debug
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Debug.LogLevel == "" {
		return slog.LevelDebug, nil
	}
	err := level.UnmarshalText([]byte(c.Debug.LogLevel))
	return level, err
}

// ColorKey returns the transparency key, nil when unset
func (c *Config) ColorKey() color.Color {
	if c.Game.ColorKey == "" {
		return nil
	}
	k, err := ParseHexColor(c.Game.ColorKey)
	if err != nil {
		return nil
	}
	return k
}

// BackgroundColor returns the background fill as a terminal color
func (c *Config) BackgroundColor() tcell.Color {
	k, err := ParseHexColor(c.Game.Background)
	if err != nil {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(k.R), int32(k.G), int32(k.B))
}

// ParseHexColor parses "#rrggbb"
func ParseHexColor(s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("expected #rrggbb, got %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("expected #rrggbb, got %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
