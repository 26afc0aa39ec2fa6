// Package scene is the photoelectric simulator screen: the widget tree, the
// menu workflows, the per-tick update and the full redraw.
package scene

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"

	"github.com/san-kum/photosim/internal/config"
	"github.com/san-kum/photosim/internal/metrics"
	"github.com/san-kum/photosim/internal/physics"
	"github.com/san-kum/photosim/internal/storage"
	"github.com/san-kum/photosim/internal/widget"
)

var (
	panelGrey     = color.RGBA{180, 180, 180, 255}
	electronBlue  = color.RGBA{60, 230, 255, 255}
	collectorGrey = color.RGBA{100, 100, 100, 255}
	statusRed     = color.RGBA{170, 0, 0, 255}
	lampBody      = color.RGBA{70, 70, 70, 255}
)

type Options struct {
	Config *config.Config

	// Records persists metals, values and settings. Nil disables the
	// save, load and clear buttons.
	Records *storage.Records

	Font      widget.Font
	SmallFont widget.Font
	Logger    *log.Logger
}

// clickable is a button the scene reacts to after dispatch.
type clickable interface {
	widget.Widget
	Clicked() bool
}

type Scene struct {
	cfg     *config.Config
	log     *log.Logger
	records *storage.Records
	session *physics.Session
	root    *widget.Root

	font, small widget.Font

	wavelength, intensity, stop *widget.Slider
	metalDrop                   *widget.Dropdown
	createBtn                   *widget.Button
	saveBtn, loadBtn            *widget.Button
	settingsBtn                 clickable
	speedLabel                  *widget.Label
	statusLabel                 *widget.Label

	createMenu       *widget.Menu
	nameBox, workBox *widget.TextBox
	red, green, blue *widget.Slider
	swatch           *widget.ColorSwatch
	saveMetalCheck   *widget.Checkbox
	addBtn, closeBtn *widget.Button

	settingsMenu    *widget.Menu
	photonCheck     *widget.Checkbox
	storageBtn      *widget.Button
	saveSettingsBtn *widget.Button

	storageMenu    *widget.Menu
	clearValuesBtn *widget.Button
	clearMetalsBtn *widget.Button
	backBtn        *widget.Button

	lamp        *widget.Image
	showPhotons bool
	newColor    color.RGBA
	light       color.RGBA
	report      physics.StepReport
	status      string
}

func New(opts Options) (*Scene, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	builtin, err := cfg.Metals()
	if err != nil {
		return nil, err
	}
	metals, err := physics.NewMetals(builtin...)
	if err != nil {
		return nil, err
	}
	session, err := physics.NewSession(cfg.SessionConfig(), metals)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Standard(cfg.TickRate) {
		session.AddMetric(m)
	}

	s := &Scene{
		cfg:         cfg,
		log:         logger,
		records:     opts.Records,
		session:     session,
		root:        widget.NewRoot(),
		font:        opts.Font,
		small:       opts.SmallFont,
		showPhotons: true,
	}
	if s.font == nil {
		s.font = widget.FixedFont{Px: float64(cfg.Window.FontSize)}
	}
	if s.small == nil {
		s.small = widget.FixedFont{Px: float64(cfg.Window.SmallFont)}
	}
	s.root.Modal = cfg.ModalMenus

	s.loadCustomMetals()
	s.buildPanel()
	s.buildCreateMenu()
	s.buildSettingsMenus()
	s.loadSettings()
	s.applyLight(cfg.Light)

	if img, err := widget.LoadImage(cfg.AssetDir, "lamp"); err == nil {
		s.lamp = img
	} else {
		s.log.Warn("lamp image unavailable, drawing outline", "err", err)
	}
	return s, nil
}

func (s *Scene) Session() *physics.Session  { return s.session }
func (s *Scene) Root() *widget.Root         { return s.root }
func (s *Scene) Report() physics.StepReport { return s.report }
func (s *Scene) Status() string             { return s.status }
func (s *Scene) ShowPhotons() bool          { return s.showPhotons }
func (s *Scene) Light() color.RGBA          { return s.light }
func (s *Scene) Config() *config.Config     { return s.cfg }

// Params reads the lamp and circuit settings from the main sliders.
func (s *Scene) Params() physics.Params {
	return physics.Params{
		Wavelength:  s.wavelength.Value(),
		Intensity:   s.intensity.Value(),
		StopVoltage: s.stop.Value(),
	}
}

// ApplyPreset moves the sliders and metal selection to a light preset.
func (s *Scene) ApplyPreset(p *config.Preset) {
	s.applyLight(p.Light)
}

func (s *Scene) applyLight(l config.LightConfig) {
	s.wavelength.SetValue(l.Wavelength)
	s.intensity.SetValue(l.Intensity)
	s.stop.SetValue(l.StopVoltage)
	if l.Metal != "" {
		s.selectMetal(l.Metal)
	}
}

func (s *Scene) selectMetal(name string) {
	if err := s.session.SetMetal(name); err != nil {
		s.fail("select metal", err)
		return
	}
	if i := s.session.Metals().Index(name); i >= 0 {
		_ = s.metalDrop.SetCurrent(i)
	}
}

func (s *Scene) loadCustomMetals() {
	if s.records == nil {
		return
	}
	custom, err := s.records.LoadMetals()
	if err != nil {
		s.fail("load custom metals", err)
	}
	for _, m := range custom {
		if err := s.session.AddMetal(m); err != nil {
			s.log.Warn("skipping saved metal", "name", m.Name, "err", err)
		}
	}
}

func (s *Scene) loadSettings() {
	if s.records == nil {
		s.photonCheck.SetOn(s.showPhotons)
		return
	}
	st, err := s.records.LoadSettings()
	if err != nil {
		s.fail("load settings", err)
	}
	s.showPhotons = st.ShowPhotons
	s.photonCheck.SetOn(st.ShowPhotons)
}

// fail logs err and shows it on the status line.
func (s *Scene) fail(action string, err error) {
	s.log.Error(action+" failed", "err", err)
	s.setStatus(fmt.Sprintf("%s: %v", action, err))
}

func (s *Scene) info(msg string, keyvals ...any) {
	s.log.Info(msg, keyvals...)
	s.setStatus(msg)
}

func (s *Scene) setStatus(msg string) {
	s.status = msg
	if s.statusLabel != nil {
		s.statusLabel.SetText(msg)
	}
}

func isMissing(err error) bool {
	return errors.Is(err, widget.ErrAssetNotFound) || errors.Is(err, storage.ErrNoValues)
}
