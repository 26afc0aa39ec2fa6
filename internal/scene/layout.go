package scene

import (
	"github.com/san-kum/photosim/internal/geom"
	"github.com/san-kum/photosim/internal/widget"
)

var (
	panelRect    = geom.R(0, 0, 450, 200)
	lampAt       = geom.Pt(500, 150)
	lightPolygon = []geom.Point{geom.Pt(60, 400), geom.Pt(60, 550), geom.Pt(700, 380), geom.Pt(512, 202)}
)

const (
	nameLimit = 15
	workLimit = 5
)

// workBlocked is every key a work function entry refuses: letters and
// symbols, leaving digits and the decimal point.
var workBlocked = []string{
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
	"-", "=", "[", "]", ";", "'", "#", ",", "/", "\\", "`",
	"!", "\"", "£", "$", "%", "^", "&", "*", "(", ")", "_", "+",
	"~", "{", "}", ":", "@", "<", ">", "?", "|",
}

func (s *Scene) buildPanel() {
	sl := s.cfg.Sliders
	s.wavelength = widget.NewSlider(150, 5, 200, 25, s.font, sl.Wavelength.Min, sl.Wavelength.Max, sl.Wavelength.Min, sl.Wavelength.Decimals)
	s.intensity = widget.NewSlider(150, 40, 200, 25, s.font, sl.Intensity.Min, sl.Intensity.Max, sl.Intensity.Min, sl.Intensity.Decimals)
	s.stop = widget.NewSlider(300, 550, 200, 25, s.font, sl.StopVoltage.Min, sl.StopVoltage.Max, sl.StopVoltage.Min, sl.StopVoltage.Decimals)

	s.metalDrop = widget.NewDropdown(90, 90, 120, 25, s.font, s.session.Metals().Names())
	s.metalDrop.OnChange = func(_ int, name string) {
		if err := s.session.SetMetal(name); err != nil {
			s.fail("select metal", err)
		}
	}

	s.createBtn = widget.NewButton(250, 90, s.font, "Create New Metal")
	s.saveBtn = widget.NewButton(270, 130, s.font, "Save Values")
	s.loadBtn = widget.NewButton(270, 160, s.font, "Load Values")
	if s.records == nil {
		s.saveBtn.SetGreyed(true)
		s.loadBtn.SetGreyed(true)
	}

	if btn, err := widget.LoadImageButton(730, 10, s.font, s.cfg.AssetDir, "options"); err == nil {
		s.settingsBtn = btn
	} else {
		s.log.Warn("options image unavailable, using text button", "err", err)
		b := widget.NewButton(0, 10, s.small, "Settings")
		w := b.Bounds().W
		b.Translate(float64(s.cfg.Window.Width)-w-5, 0)
		s.settingsBtn = b
	}

	s.speedLabel = widget.NewLabel(5, 150, s.small, speedText(0))
	s.statusLabel = widget.NewLabel(5, float64(s.cfg.Window.Height)-25, s.small, "")
	s.statusLabel.SetColor(statusRed)

	s.root.Add(
		widget.NewLabel(5, 5, s.font, "Wavelength: "),
		widget.NewLabel(400, 5, s.font, "nm"),
		widget.NewLabel(5, 40, s.font, "Intensity: "),
		widget.NewLabel(400, 40, s.font, "%"),
		widget.NewLabel(100, 550, s.font, "Stopping Voltage: "),
		widget.NewLabel(540, 550, s.font, "V"),
		widget.NewLabel(5, 90, s.font, "Metal: "),
		s.speedLabel,
		s.statusLabel,
		s.wavelength,
		s.intensity,
		s.stop,
		s.createBtn,
		s.saveBtn,
		s.loadBtn,
		s.settingsBtn,
		// Last, so an open list draws over its neighbours.
		s.metalDrop,
	)
}

func (s *Scene) buildCreateMenu() {
	m := widget.NewMenu(200, 200, 450, 280, s.small, "Create New Metal")

	group := &widget.FocusGroup{}
	s.nameBox = widget.NewTextBox(80, 5, 200, 25, s.small, group, []string{"|"}, nameLimit)
	s.workBox = widget.NewTextBox(170, 40, 80, 25, s.small, group, workBlocked, workLimit)

	s.red = widget.NewSlider(80, 90, 200, 25, s.small, 0, 255, 0, 0)
	s.green = widget.NewSlider(80, 130, 200, 25, s.small, 0, 255, 0, 0)
	s.blue = widget.NewSlider(80, 170, 200, 25, s.small, 0, 255, 0, 0)

	// Channels are in range, so the error is always nil.
	s.swatch, _ = widget.NewColorSwatch(330, 110, 100, 100, s.small, 0, 0, 0)
	s.saveMetalCheck = s.checkbox(140, 200)
	s.addBtn = widget.NewButton(390, 230, s.small, "Add")
	s.closeBtn = widget.NewButton(10, 230, s.small, "Close")

	m.Add(s.nameBox, s.workBox, s.red, s.green, s.blue, s.swatch, s.saveMetalCheck, s.addBtn, s.closeBtn)
	m.AddText("Name:", 5, 5)
	m.AddText("Work Function:", 5, 40)
	m.AddText("x 10^-19 J", 260, 40)
	m.AddText("Colour:", 5, 70)
	m.AddText("Red", 5, 100)
	m.AddText("Green", 5, 140)
	m.AddText("Blue", 5, 180)
	m.AddText("Save to file?", 5, 200)

	s.createMenu = m
	s.root.AddMenu(m)
}

func (s *Scene) buildSettingsMenus() {
	sm := widget.NewMenu(200, 200, 450, 250, s.small, "Settings")
	s.photonCheck = s.checkbox(200, 10)
	s.storageBtn = widget.NewButton(10, 50, s.small, "Storage Settings")
	s.saveSettingsBtn = widget.NewButton(10, 200, s.small, "Save Settings")
	sm.Add(s.photonCheck, s.storageBtn, s.saveSettingsBtn)
	sm.AddText("Show Photons:", 5, 10)

	st := widget.NewMenu(150, 200, 600, 250, s.small, "Storage Settings")
	s.clearValuesBtn = widget.NewButton(10, 30, s.small, "Clear File")
	s.clearMetalsBtn = widget.NewButton(10, 100, s.small, "Clear File")
	s.backBtn = widget.NewButton(10, 160, s.small, "Back")
	st.Add(s.clearValuesBtn, s.clearMetalsBtn, s.backBtn)
	st.AddText("values.yaml - Holds saved slider values", 10, 10)
	st.AddText("metals.yaml - Holds saved custom metals", 10, 80)

	if s.records == nil {
		s.saveSettingsBtn.SetGreyed(true)
		s.storageBtn.SetGreyed(true)
		s.clearValuesBtn.SetGreyed(true)
		s.clearMetalsBtn.SetGreyed(true)
	}

	s.settingsMenu, s.storageMenu = sm, st
	s.root.AddMenu(sm, st)
}

// checkbox prefers the tick and cross images, falling back to a drawn box.
func (s *Scene) checkbox(x, y float64) *widget.Checkbox {
	cb, err := widget.LoadCheckbox(x, y, s.small, s.cfg.AssetDir, "tick", "cross")
	if err != nil {
		if !isMissing(err) {
			s.log.Warn("checkbox images unreadable", "err", err)
		}
		return widget.NewCheckbox(x, y, s.small)
	}
	return cb
}
