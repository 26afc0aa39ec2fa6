package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/photosim/internal/physics"
)

const (
	DefaultTickRate  = 30.0
	DefaultTicks     = 900
	DefaultWidth     = 800
	DefaultHeight    = 600
	DefaultFontSize  = 32
	DefaultSmallFont = 25
	DefaultDataDir   = ".photosim"
	DefaultAssetDir  = "img"
	DefaultFile      = "photosim.yaml"
)

type Config struct {
	DataDir    string        `yaml:"data_dir"`
	AssetDir   string        `yaml:"asset_dir"`
	TickRate   float64       `yaml:"tick_rate"`
	Seed       int64         `yaml:"seed"`
	ModalMenus bool          `yaml:"modal_menus"`
	Window     WindowConfig  `yaml:"window"`
	Physics    PhysicsConfig `yaml:"physics"`
	Sliders    SlidersConfig `yaml:"sliders"`
	Light      LightConfig   `yaml:"light"`
	Run        RunConfig     `yaml:"run"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	FontSize  int    `yaml:"font_size"`
	SmallFont int    `yaml:"small_font"`
}

type PhysicsConfig struct {
	SpeedScale float64       `yaml:"speed_scale"`
	Metals     []MetalConfig `yaml:"metals"`
}

type MetalConfig struct {
	Name         string  `yaml:"name"`
	WorkFunction float64 `yaml:"work_function"`
	Color        [3]int  `yaml:"color,flow"`
}

type SliderConfig struct {
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	Decimals int     `yaml:"decimals"`
}

type SlidersConfig struct {
	Wavelength  SliderConfig `yaml:"wavelength"`
	Intensity   SliderConfig `yaml:"intensity"`
	StopVoltage SliderConfig `yaml:"stop_voltage"`
}

// LightConfig is the lamp and circuit state the simulator starts with.
type LightConfig struct {
	Wavelength  float64 `yaml:"wavelength"`
	Intensity   float64 `yaml:"intensity"`
	StopVoltage float64 `yaml:"stop_voltage"`
	Metal       string  `yaml:"metal"`
}

type RunConfig struct {
	Ticks int `yaml:"ticks"`
}

func DefaultConfig() *Config {
	defaults := physics.DefaultMetals()
	metals := make([]MetalConfig, len(defaults))
	for i, m := range defaults {
		metals[i] = MetalConfig{
			Name:         m.Name,
			WorkFunction: m.WorkFunction,
			Color:        [3]int{int(m.Color.R), int(m.Color.G), int(m.Color.B)},
		}
	}

	return &Config{
		DataDir:    DefaultDataDir,
		AssetDir:   DefaultAssetDir,
		TickRate:   DefaultTickRate,
		Seed:       1,
		ModalMenus: true,
		Window: WindowConfig{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Title:     "Photoelectric Effect Simulator",
			FontSize:  DefaultFontSize,
			SmallFont: DefaultSmallFont,
		},
		Physics: PhysicsConfig{
			SpeedScale: physics.DefaultSpeedScale,
			Metals:     metals,
		},
		Sliders: SlidersConfig{
			Wavelength:  SliderConfig{Min: 100, Max: 850},
			Intensity:   SliderConfig{Min: 0, Max: 100},
			StopVoltage: SliderConfig{Min: -3, Max: 3, Decimals: 1},
		},
		Light: LightConfig{
			Wavelength: 475,
			Intensity:  50,
			Metal:      "Sodium",
		},
		Run: RunConfig{Ticks: DefaultTicks},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %f", c.TickRate)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	for name, s := range map[string]SliderConfig{
		"wavelength":   c.Sliders.Wavelength,
		"intensity":    c.Sliders.Intensity,
		"stop_voltage": c.Sliders.StopVoltage,
	} {
		if s.Max <= s.Min {
			return fmt.Errorf("slider %s: max %f must exceed min %f", name, s.Max, s.Min)
		}
	}
	if c.Sliders.Wavelength.Min <= 0 {
		return fmt.Errorf("slider wavelength: min must be positive, got %f", c.Sliders.Wavelength.Min)
	}
	if len(c.Physics.Metals) == 0 {
		return fmt.Errorf("at least one metal is required")
	}
	if _, err := c.Metals(); err != nil {
		return err
	}
	return nil
}

// Metals converts the configured metals, validating each.
func (c *Config) Metals() ([]physics.Metal, error) {
	out := make([]physics.Metal, 0, len(c.Physics.Metals))
	for _, m := range c.Physics.Metals {
		col := color.RGBA{A: 255}
		for i, ch := range m.Color {
			if ch < 0 || ch > 255 {
				return nil, fmt.Errorf("%w: %s colour channel %d", physics.ErrInvalidMetal, m.Name, ch)
			}
			switch i {
			case 0:
				col.R = uint8(ch)
			case 1:
				col.G = uint8(ch)
			case 2:
				col.B = uint8(ch)
			}
		}
		metal := physics.Metal{Name: m.Name, WorkFunction: m.WorkFunction, Color: col}
		if err := metal.Validate(); err != nil {
			return nil, err
		}
		out = append(out, metal)
	}
	return out, nil
}

func (c *Config) SessionConfig() physics.SessionConfig {
	sc := physics.DefaultSessionConfig()
	sc.Geometry.Width = float64(c.Window.Width)
	sc.Geometry.Height = float64(c.Window.Height)
	sc.SpeedScale = c.Physics.SpeedScale
	sc.Seed = c.Seed
	return sc
}

func (c *Config) Params() physics.Params {
	return physics.Params{
		Wavelength:  c.Light.Wavelength,
		Intensity:   c.Light.Intensity,
		StopVoltage: c.Light.StopVoltage,
	}
}
