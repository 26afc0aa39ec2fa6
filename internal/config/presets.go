package config

import "sort"

type Preset struct {
	Description string
	Light       LightConfig
}

var Presets = map[string]*Preset{
	"sodium-blue": {
		Description: "blue light on sodium, steady photocurrent",
		Light:       LightConfig{Wavelength: 450, Intensity: 60, Metal: "Sodium"},
	},
	"sodium-red": {
		Description: "red light on sodium, below threshold",
		Light:       LightConfig{Wavelength: 650, Intensity: 100, Metal: "Sodium"},
	},
	"copper-uv": {
		Description: "ultraviolet on copper",
		Light:       LightConfig{Wavelength: 200, Intensity: 80, Metal: "Copper"},
	},
	"zinc-threshold": {
		Description: "zinc just above its threshold wavelength",
		Light:       LightConfig{Wavelength: 285, Intensity: 100, Metal: "Zinc"},
	},
	"magnesium-stopped": {
		Description: "magnesium under violet light with a blocking stop voltage",
		Light:       LightConfig{Wavelength: 300, Intensity: 100, StopVoltage: 3, Metal: "Magnesium"},
	},
	"dim": {
		Description: "low intensity, sparse photons",
		Light:       LightConfig{Wavelength: 400, Intensity: 5, Metal: "Sodium"},
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset light settings into cfg.
func (p *Preset) Apply(cfg *Config) {
	cfg.Light = p.Light
}
