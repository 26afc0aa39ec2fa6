package scene

import (
	"fmt"

	"github.com/san-kum/photosim/internal/physics"
	"github.com/san-kum/photosim/internal/spectrum"
)

// Readout is the numeric state of the experiment for text front ends.
type Readout struct {
	Params       physics.Params
	Metal        physics.Metal
	Calc         physics.Calculation
	Band         string
	Tick         int
	Photons      int
	Electrons    int
	AverageSpeed float64
	Metrics      map[string]float64
}

func (s *Scene) Readout() Readout {
	p := s.Params()
	m := s.session.Current()
	return Readout{
		Params:       p,
		Metal:        m,
		Calc:         physics.Calculate(p.Wavelength*physics.Nano, m.WorkFunction),
		Band:         spectrum.Name(p.Wavelength),
		Tick:         s.session.Ticks(),
		Photons:      len(s.session.Photons()),
		Electrons:    len(s.session.Electrons()),
		AverageSpeed: s.session.AverageSpeed(),
		Metrics:      s.session.Metrics(),
	}
}

func (r Readout) Lines() []string {
	c := r.Calc
	lines := []string{
		fmt.Sprintf("Wavelength:      %.0f nm (%s)", r.Params.Wavelength, r.Band),
		fmt.Sprintf("Intensity:       %.0f %%", r.Params.Intensity),
		fmt.Sprintf("Stop voltage:    %.1f V", r.Params.StopVoltage),
		fmt.Sprintf("Metal:           %s (%.2f eV)", r.Metal.Name, physics.JoulesToEV(r.Metal.WorkFunction)),
		fmt.Sprintf("Photon energy:   %.2f eV", physics.JoulesToEV(c.PhotonEnergy)),
		fmt.Sprintf("Threshold:       %.0f nm", c.ThresholdWavelength/physics.Nano),
	}
	if c.Emits {
		lines = append(lines,
			fmt.Sprintf("Max KE:          %.2f eV", physics.JoulesToEV(c.MaxKineticEnergy)),
			fmt.Sprintf("Stopping pot.:   %.2f V", c.StoppingPotential))
	} else {
		lines = append(lines, "Max KE:          no emission")
	}
	lines = append(lines,
		fmt.Sprintf("Tick %d  photons %d  electrons %d", r.Tick, r.Photons, r.Electrons),
		fmt.Sprintf("Average speed:   %.0f m/s", r.AverageSpeed),
		fmt.Sprintf("Collected:       %.1f e/s", r.Metrics["photocurrent"]),
	)
	return lines
}
