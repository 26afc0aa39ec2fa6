package physics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/photosim/internal/geom"
	"github.com/san-kum/photosim/internal/spectrum"
)

// DefaultSpeedScale converts electron speed in m/s to pixels per tick.
const DefaultSpeedScale = 1e-5

// Params are the lamp and circuit settings for one tick.
type Params struct {
	Wavelength  float64 // nm
	Intensity   float64 // percent
	StopVoltage float64 // V
}

func (p Params) Validate() error {
	for _, v := range [...]float64{p.Wavelength, p.Intensity, p.StopVoltage} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value in %+v", ErrInvalidParams, p)
		}
	}
	if p.Wavelength <= 0 {
		return fmt.Errorf("%w: wavelength %g nm", ErrInvalidParams, p.Wavelength)
	}
	if p.Intensity < 0 {
		return fmt.Errorf("%w: intensity %g%%", ErrInvalidParams, p.Intensity)
	}
	return nil
}

type SessionConfig struct {
	Geometry   Geometry
	SpeedScale float64
	Seed       int64
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Geometry:   DefaultGeometry(),
		SpeedScale: DefaultSpeedScale,
		Seed:       1,
	}
}

// StepReport summarises one tick.
type StepReport struct {
	Tick         int     `json:"tick"`
	Emitted      bool    `json:"emitted"`
	Absorbed     int     `json:"absorbed"`  // photons that reached the plate
	Liberated    int     `json:"liberated"` // electrons freed
	Collected    int     `json:"collected"` // electrons that reached the collector
	Escaped      int     `json:"escaped"`   // photons that left the screen
	Photons      int     `json:"photons"`
	Electrons    int     `json:"electrons"`
	AverageSpeed float64 `json:"average_speed"` // m/s
	EmittedKE    float64 `json:"emitted_ke,omitempty"`
}

// Metric accumulates a statistic over the reports of a session.
type Metric interface {
	Name() string
	Observe(r StepReport)
	Value() float64
	Reset()
}

// Session owns all simulation state for one simulator screen.
type Session struct {
	cfg       SessionConfig
	metals    *Metals
	current   Metal
	photons   []*Photon
	electrons []*Electron
	emitter   Emitter
	rng       *rand.Rand
	tick      int
	avgSpeed  float64
	metrics   []Metric
}

func NewSession(cfg SessionConfig, metals *Metals) (*Session, error) {
	if metals == nil || metals.Len() == 0 {
		return nil, fmt.Errorf("%w: no metals registered", ErrUnknownMetal)
	}
	if cfg.SpeedScale <= 0 {
		cfg.SpeedScale = DefaultSpeedScale
	}
	first, _ := metals.At(0)
	return &Session{
		cfg:     cfg,
		metals:  metals,
		current: first,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

func (s *Session) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Session) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Session) Geometry() Geometry     { return s.cfg.Geometry }
func (s *Session) Metals() *Metals        { return s.metals }
func (s *Session) Current() Metal         { return s.current }
func (s *Session) Photons() []*Photon     { return s.photons }
func (s *Session) Electrons() []*Electron { return s.electrons }
func (s *Session) Countdown() int         { return s.emitter.Countdown() }
func (s *Session) Ticks() int             { return s.tick }
func (s *Session) AverageSpeed() float64  { return s.avgSpeed }

func (s *Session) SetMetal(name string) error {
	m, err := s.metals.Find(name)
	if err != nil {
		return err
	}
	s.current = m
	return nil
}

func (s *Session) AddMetal(m Metal) error {
	return s.metals.Add(m)
}

// Reset clears particles, the emitter and the metrics. Metals and the
// current selection are kept.
func (s *Session) Reset() {
	s.photons = nil
	s.electrons = nil
	s.emitter.Reset()
	s.tick = 0
	s.avgSpeed = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Step emits, moves and collides every particle once.
func (s *Session) Step(p Params) (StepReport, error) {
	if err := p.Validate(); err != nil {
		return StepReport{}, err
	}
	g := s.cfg.Geometry
	rep := StepReport{Tick: s.tick}

	if s.emitter.Tick(p.Intensity) {
		ph := s.spawn(p.Wavelength)
		s.photons = append(s.photons, ph)
		rep.Emitted = true
		rep.EmittedKE = ph.Energy
	}

	kept := s.photons[:0]
	for _, ph := range s.photons {
		ph.Move()
		switch {
		case ph.Hitbox().Overlaps(g.Target):
			rep.Absorbed++
			if ph.Liberate(p.StopVoltage) {
				s.electrons = append(s.electrons, NewElectron(
					geom.Pt(g.ElectronX, ph.Pos.Y), g.ElectronRadius, ph.Energy, s.cfg.SpeedScale))
				rep.Liberated++
			}
		case ph.Offscreen(g.Height):
			rep.Escaped++
		default:
			kept = append(kept, ph)
		}
	}
	clear(s.photons[len(kept):])
	s.photons = kept

	// averaged before collection, so electrons arriving this tick count
	s.avgSpeed = AverageSpeed(s.electrons)

	live := s.electrons[:0]
	for _, e := range s.electrons {
		e.Move()
		if e.Hitbox().Overlaps(g.Collector) {
			rep.Collected++
			continue
		}
		live = append(live, e)
	}
	clear(s.electrons[len(live):])
	s.electrons = live

	rep.Photons = len(s.photons)
	rep.Electrons = len(s.electrons)
	rep.AverageSpeed = s.avgSpeed
	s.tick++

	for _, m := range s.metrics {
		m.Observe(rep)
	}
	return rep, nil
}

func (s *Session) spawn(nm float64) *Photon {
	g := s.cfg.Geometry
	x := g.Source.X + float64(s.rng.Intn(int(g.Source.W)+1))
	y := g.Source.Y + float64(s.rng.Intn(int(g.Source.H)+1))
	return &Photon{
		Pos:    geom.Pt(x, y),
		Vel:    g.PhotonVelocity,
		Radius: g.PhotonRadius,
		Energy: MaxKineticEnergy(nm*Nano, s.current.WorkFunction),
		Color:  spectrum.Color(nm),
	}
}
