package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/photosim/internal/analysis"
	"github.com/san-kum/photosim/internal/config"
	"github.com/san-kum/photosim/internal/physics"
	"github.com/san-kum/photosim/internal/sim"
	"github.com/san-kum/photosim/internal/storage"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoSteps      = errors.New("scenario has no steps")
	ErrUnknownSweep = errors.New("unknown sweep parameter")
)

// Scenario is a scripted sequence of headless runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep runs one light setting. A preset is applied first and the
// explicit fields override it; zero fields keep the configured light.
type ScenarioStep struct {
	Preset      string     `yaml:"preset"`
	Metal       string     `yaml:"metal"`
	Wavelength  float64    `yaml:"wavelength"`
	Intensity   *float64   `yaml:"intensity"`
	StopVoltage *float64   `yaml:"stop_voltage"`
	Ticks       int        `yaml:"ticks"`
	Seed        int64      `yaml:"seed"`
	SaveAs      string     `yaml:"save_as"`
	Sweep       *SweepSpec `yaml:"sweep"`
}

// SweepSpec turns a step into a parameter sweep.
type SweepSpec struct {
	Param string  `yaml:"param"` // wavelength or stop_voltage
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Steps int     `yaml:"steps"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, ErrNoSteps
	}
	for i, step := range scenario.Steps {
		if step.Preset != "" && config.GetPreset(step.Preset) == nil {
			return nil, fmt.Errorf("step %d: unknown preset %q", i+1, step.Preset)
		}
		if step.Ticks < 0 {
			return nil, fmt.Errorf("step %d: ticks must not be negative", i+1)
		}
		if sw := step.Sweep; sw != nil && sw.Param != "wavelength" && sw.Param != "stop_voltage" {
			return nil, fmt.Errorf("step %d: %w %q", i+1, ErrUnknownSweep, sw.Param)
		}
	}
	return &scenario, nil
}

// Light resolves the step against the base light.
func (s ScenarioStep) Light(base config.LightConfig) config.LightConfig {
	light := base
	if p := config.GetPreset(s.Preset); p != nil {
		light = p.Light
	}
	if s.Metal != "" {
		light.Metal = s.Metal
	}
	if s.Wavelength > 0 {
		light.Wavelength = s.Wavelength
	}
	if s.Intensity != nil {
		light.Intensity = *s.Intensity
	}
	if s.StopVoltage != nil {
		light.StopVoltage = *s.StopVoltage
	}
	return light
}

// StepResult is the outcome of one scenario step. Run is nil for sweeps.
type StepResult struct {
	Light  config.LightConfig
	Run    *sim.Result
	RunID  string
	Sweep  []analysis.SweepPoint
	CutOff float64
	HasCut bool
}

// Runner executes scenarios against a configuration. Store and Logger
// may be nil.
type Runner struct {
	Config *config.Config
	Custom []physics.Metal
	Store  *storage.RunStore
	Logger *log.Logger
}

func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		light := step.Light(r.Config.Light)
		if r.Logger != nil {
			r.Logger.Info("scenario step", "n", i+1, "of", len(scenario.Steps),
				"metal", light.Metal, "nm", light.Wavelength)
		}

		res, err := r.runStep(ctx, step, light)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) runStep(ctx context.Context, step ScenarioStep, light config.LightConfig) (StepResult, error) {
	out := StepResult{Light: light}

	ticks := step.Ticks
	if ticks == 0 {
		ticks = r.Config.Run.Ticks
	}
	seed := step.Seed
	if seed == 0 {
		seed = r.Config.Seed
	}
	factory := sim.Factory(r.Config.Factory(light.Metal, r.Custom))
	cfg := sim.Config{
		Ticks: ticks,
		Seed:  seed,
		Params: physics.Params{
			Wavelength:  light.Wavelength,
			Intensity:   light.Intensity,
			StopVoltage: light.StopVoltage,
		},
	}

	if sw := step.Sweep; sw != nil {
		var err error
		switch sw.Param {
		case "wavelength":
			out.Sweep, err = analysis.SweepWavelength(ctx, factory, cfg, sw.Min, sw.Max, sw.Steps)
		case "stop_voltage":
			out.Sweep, err = analysis.SweepStopVoltage(ctx, factory, cfg, sw.Min, sw.Max, sw.Steps)
		default:
			err = fmt.Errorf("%w %q", ErrUnknownSweep, sw.Param)
		}
		if err != nil {
			return out, err
		}
		out.CutOff, out.HasCut = analysis.CutOff(out.Sweep)
		return out, nil
	}

	result, err := sim.New(factory).Run(ctx, cfg)
	if err != nil {
		return out, err
	}
	out.Run = result

	if step.SaveAs != "" && r.Store != nil {
		session, err := factory(seed)
		if err != nil {
			return out, err
		}
		meta := storage.RunMetadata{
			Name:         step.SaveAs,
			Metal:        result.Metal,
			WorkFunction: session.Current().WorkFunction,
			Wavelength:   light.Wavelength,
			Intensity:    light.Intensity,
			StopVoltage:  light.StopVoltage,
			Seed:         seed,
			TickRate:     r.Config.TickRate,
			Metrics:      result.Metrics,
		}
		id, err := r.Store.Save(meta, result.Trace)
		if err != nil {
			return out, err
		}
		out.RunID = id
	}
	return out, nil
}
