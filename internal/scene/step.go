package scene

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/photosim/internal/physics"
	"github.com/san-kum/photosim/internal/spectrum"
	"github.com/san-kum/photosim/internal/storage"
	"github.com/san-kum/photosim/internal/widget"
)

// Step runs one frame: widget updates, input, menu workflows and one
// physics tick. It reports whether the front end asked to quit.
func (s *Scene) Step(in widget.Input) (bool, error) {
	if err := validateInput(in); err != nil {
		return false, err
	}

	p := in.Pointer
	s.root.Update(p.X, p.Y)
	s.syncSwatch()

	quit := s.root.Dispatch(in)
	s.handleMain()
	s.handleCreate()
	s.handleSettings()
	s.handleStorage()

	if s.settingsMenu.Visible() {
		s.showPhotons = s.photonCheck.On()
	}

	params := s.Params()
	rep, err := s.session.Step(params)
	if err != nil {
		return quit, err
	}
	s.report = rep
	s.speedLabel.SetText(speedText(rep.AverageSpeed))
	s.light = spectrum.Light(params.Wavelength, params.Intensity)
	return quit, nil
}

func validateInput(in widget.Input) error {
	if !finite(in.Pointer.X) || !finite(in.Pointer.Y) {
		return fmt.Errorf("%w: pointer (%v, %v)", ErrInvalidInput, in.Pointer.X, in.Pointer.Y)
	}
	for _, ev := range in.Events {
		if ev.Kind < widget.MouseDown || ev.Kind > widget.Quit {
			return fmt.Errorf("%w: event kind %d", ErrInvalidInput, ev.Kind)
		}
		if ev.Kind == widget.MouseDown && (!finite(ev.X) || !finite(ev.Y)) {
			return fmt.Errorf("%w: click at (%v, %v)", ErrInvalidInput, ev.X, ev.Y)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func speedText(v float64) string {
	return "Average Speed: " + strconv.FormatFloat(math.Round(v), 'f', 0, 64) + " ms^-1"
}

func (s *Scene) syncSwatch() {
	// Slider values stay inside 0..255.
	_ = s.swatch.SetRGB(channel(s.red), channel(s.green), channel(s.blue))
	s.newColor = s.swatch.Color()
}

func channel(sl *widget.Slider) int { return int(math.Round(sl.Value())) }

func (s *Scene) handleMain() {
	if s.createBtn.Clicked() && !s.settingsMenu.Visible() && !s.storageMenu.Visible() {
		s.createMenu.Show()
	}
	if s.settingsBtn.Clicked() && !s.createMenu.Visible() && !s.storageMenu.Visible() {
		s.photonCheck.SetOn(s.showPhotons)
		s.settingsMenu.Show()
	}
	if s.saveBtn.Clicked() {
		s.saveValues()
	}
	if s.loadBtn.Clicked() {
		s.loadValues()
	}
}

func (s *Scene) handleCreate() {
	if !s.createMenu.Visible() {
		return
	}
	if s.closeBtn.Clicked() {
		s.closeCreate()
		return
	}
	if s.addBtn.Clicked() {
		s.addMetal()
	}
}

func (s *Scene) closeCreate() {
	s.createMenu.Hide()
	s.nameBox.Clear()
	s.workBox.Clear()
}

// addMetal registers the metal described by the create menu. The menu
// stays open when the entry is rejected.
func (s *Scene) addMetal() {
	name := strings.TrimSpace(s.nameBox.Text())
	if name == "" || strings.TrimSpace(s.workBox.Text()) == "" {
		s.setStatus("A new metal needs a name and a work function")
		return
	}
	wf, err := physics.ParseWorkFunction(s.workBox.Text())
	if err != nil {
		s.fail("add metal", err)
		return
	}
	m := physics.Metal{Name: name, WorkFunction: wf, Color: s.newColor, Custom: true}
	if err := s.session.AddMetal(m); err != nil {
		s.fail("add metal", err)
		return
	}
	s.metalDrop.SetOptions(s.session.Metals().Names())

	if s.saveMetalCheck.On() && s.records != nil {
		if err := s.records.AppendMetal(m); err != nil {
			s.fail("save metal", err)
		} else {
			s.clearMetalsBtn.SetGreyed(false)
		}
	}
	s.info("Added metal "+name, "work_function", wf)
	s.closeCreate()
}

func (s *Scene) saveValues() {
	if s.records == nil {
		return
	}
	p := s.Params()
	v := storage.Values{
		Version:     storage.Version,
		Kind:        storage.KindValues,
		Wavelength:  p.Wavelength,
		Intensity:   p.Intensity,
		StopVoltage: p.StopVoltage,
		Metal:       s.session.Current().Name,
		MetalIndex:  s.metalDrop.Current(),
	}
	if err := s.records.SaveValues(v); err != nil {
		s.fail("save values", err)
		return
	}
	s.clearValuesBtn.SetGreyed(false)
	s.info("Saved values", "path", s.records.ValuesPath())
}

func (s *Scene) loadValues() {
	if s.records == nil {
		return
	}
	v, err := s.records.LoadValues()
	if errors.Is(err, storage.ErrNoValues) {
		s.setStatus("No saved values")
		return
	}
	if err != nil {
		s.fail("load values", err)
		return
	}
	s.wavelength.SetValue(v.Wavelength)
	s.intensity.SetValue(v.Intensity)
	s.stop.SetValue(v.StopVoltage)

	name := v.Metal
	if s.session.Metals().Index(name) < 0 {
		m, err := s.session.Metals().At(v.MetalIndex)
		if err != nil {
			s.fail("load values", err)
			return
		}
		name = m.Name
	}
	s.selectMetal(name)
	s.info("Loaded values", "metal", name)
}

func (s *Scene) handleSettings() {
	if !s.settingsMenu.Visible() {
		return
	}
	if s.storageBtn.Clicked() {
		s.settingsMenu.Hide()
		s.storageMenu.Show()
		return
	}
	if s.saveSettingsBtn.Clicked() {
		s.showPhotons = s.photonCheck.On()
		st := storage.DefaultSettings()
		st.ShowPhotons = s.showPhotons
		if err := s.records.SaveSettings(st); err != nil {
			s.fail("save settings", err)
			return
		}
		s.settingsMenu.Hide()
		s.info("Saved settings", "show_photons", s.showPhotons)
	}
}

func (s *Scene) handleStorage() {
	if !s.storageMenu.Visible() {
		return
	}
	if s.backBtn.Clicked() {
		s.storageMenu.Hide()
		s.settingsMenu.Show()
		return
	}
	if s.clearValuesBtn.Clicked() {
		if err := s.records.ClearValues(); err != nil {
			s.fail("clear values", err)
		} else {
			s.clearValuesBtn.SetGreyed(true)
			s.info("Cleared saved values")
		}
	}
	if s.clearMetalsBtn.Clicked() {
		if err := s.records.ClearMetals(); err != nil {
			s.fail("clear metals", err)
		} else {
			s.clearMetalsBtn.SetGreyed(true)
			s.info("Cleared saved metals")
		}
	}
}
