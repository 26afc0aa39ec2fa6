package scene

import (
	"context"
	"errors"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/photosim/internal/config"
	"github.com/san-kum/photosim/internal/geom"
	"github.com/san-kum/photosim/internal/storage"
	"github.com/san-kum/photosim/internal/widget"
)

type op struct {
	kind string
	rect geom.Rect
	text string
	c    color.RGBA
}

type recorder struct{ ops []op }

func (r *recorder) add(o op) { r.ops = append(r.ops, o) }

func (r *recorder) Clear(c color.RGBA) { r.add(op{kind: "clear", c: c}) }
func (r *recorder) FillRect(rc geom.Rect, c color.RGBA) { r.add(op{kind: "fill", rect: rc, c: c}) }
func (r *recorder) StrokeRect(rc geom.Rect, c color.RGBA, _ float64) {
	r.add(op{kind: "stroke", rect: rc, c: c})
}
func (r *recorder) FillPolygon(_ []geom.Point, c color.RGBA) { r.add(op{kind: "polygon", c: c}) }
func (r *recorder) FillCircle(p geom.Point, rad float64, c color.RGBA) {
	r.add(op{kind: "circle", rect: geom.R(p.X, p.Y, rad, rad), c: c})
}
func (r *recorder) StrokeCircle(p geom.Point, rad float64, c color.RGBA, _ float64) {
	r.add(op{kind: "ring", rect: geom.R(p.X, p.Y, rad, rad), c: c})
}
func (r *recorder) Line(_, _ geom.Point, c color.RGBA, _ float64) { r.add(op{kind: "line", c: c}) }
func (r *recorder) Text(s string, at geom.Point, _ widget.Font, c color.RGBA) {
	r.add(op{kind: "text", rect: geom.R(at.X, at.Y, 0, 0), text: s, c: c})
}
func (r *recorder) DrawImage(img *widget.Image, at geom.Point) {
	r.add(op{kind: "image", rect: geom.R(at.X, at.Y, 0, 0), text: img.Name})
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) hasText(s string) bool {
	for _, o := range r.ops {
		if o.kind == "text" && o.text == s {
			return true
		}
	}
	return false
}

func newTestScene(t *testing.T) (*Scene, *storage.Records) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.AssetDir = t.TempDir()
	rec := storage.NewRecords(t.TempDir())
	if err := rec.Init(); err != nil {
		t.Fatal(err)
	}
	s, err := New(Options{Config: cfg, Records: rec})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, rec
}

func idle(x, y float64) widget.Input {
	return widget.Input{Pointer: geom.Pt(x, y)}
}

func click(x, y float64) widget.Input {
	return widget.Input{
		Pointer: geom.Pt(x, y),
		Events: []widget.Event{
			{Kind: widget.MouseDown, X: x, Y: y},
			{Kind: widget.MouseUp, X: x, Y: y},
		},
	}
}

func typed(text string) widget.Input {
	var evs []widget.Event
	for _, r := range text {
		k := widget.Char(r)
		evs = append(evs, widget.Event{Kind: widget.KeyDown, Key: k}, widget.Event{Kind: widget.KeyUp, Key: k})
	}
	return widget.Input{Events: evs}
}

func step(t *testing.T, s *Scene, in widget.Input) {
	t.Helper()
	if _, err := s.Step(in); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func center(w widget.Widget) (float64, float64) {
	c := w.Bounds().Center()
	return c.X, c.Y
}

func TestNewScene(t *testing.T) {
	s, rec := newTestScene(t)

	if got := len(s.metalDrop.Options()); got != 4 {
		t.Errorf("expected 4 metals, got %d", got)
	}
	if s.session.Current().Name != "Sodium" {
		t.Errorf("expected Sodium, got %s", s.session.Current().Name)
	}
	if got := s.wavelength.Value(); math.Abs(got-475) > 1e-9 {
		t.Errorf("expected wavelength 475, got %f", got)
	}
	if !s.ShowPhotons() {
		t.Error("photons should be shown by default")
	}
	if _, err := rec.LoadSettings(); err != nil {
		t.Errorf("settings file should exist: %v", err)
	}
	// No options image in the asset dir, so the text fallback is used.
	if _, ok := s.settingsBtn.(*widget.Button); !ok {
		t.Errorf("expected text settings button, got %T", s.settingsBtn)
	}
}

func TestNewSceneLoadsSavedMetals(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AssetDir = t.TempDir()
	rec := storage.NewRecords(t.TempDir())
	if err := rec.Init(); err != nil {
		t.Fatal(err)
	}
	custom, err := storage.MetalRecord{Name: "Foo", WorkFunction: 4e-19, Color: [3]int{1, 2, 3}}.Metal()
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.AppendMetal(custom); err != nil {
		t.Fatal(err)
	}

	s, err := New(Options{Config: cfg, Records: rec})
	if err != nil {
		t.Fatal(err)
	}
	if s.session.Metals().Index("Foo") < 0 {
		t.Error("saved metal not loaded")
	}
	if got := len(s.metalDrop.Options()); got != 5 {
		t.Errorf("expected 5 options, got %d", got)
	}
}

func TestCreateMetalWorkflow(t *testing.T) {
	s, rec := newTestScene(t)

	step(t, s, click(center(s.createBtn)))
	if !s.createMenu.Visible() {
		t.Fatal("create menu should open")
	}

	step(t, s, typed("foo"))
	step(t, s, click(center(s.workBox)))
	step(t, s, typed("2.5x"))
	if got := s.workBox.Text(); got != "2.5" {
		t.Errorf("work function box = %q, want 2.5", got)
	}

	step(t, s, click(center(s.addBtn)))
	if s.createMenu.Visible() {
		t.Fatal("menu should close after a successful add")
	}
	m, err := s.session.Metals().Find("foo")
	if err != nil {
		t.Fatalf("metal not added: %v", err)
	}
	if math.Abs(m.WorkFunction-2.5e-19) > 1e-30 {
		t.Errorf("work function = %g", m.WorkFunction)
	}
	if got := len(s.metalDrop.Options()); got != 5 {
		t.Errorf("expected 5 options, got %d", got)
	}
	if s.nameBox.Text() != "" || s.workBox.Text() != "" {
		t.Error("boxes should be cleared")
	}

	saved, err := rec.LoadMetals()
	if err != nil {
		t.Fatal(err)
	}
	if len(saved) != 0 {
		t.Errorf("metal saved without the checkbox: %v", saved)
	}
}

func TestSwatchRoundsSliders(t *testing.T) {
	s, _ := newTestScene(t)
	s.red.SetValue(254.6)
	s.green.SetValue(0.4)
	s.blue.SetValue(100.6)
	s.syncSwatch()

	if c := s.newColor; c.R != 255 || c.G != 0 || c.B != 101 {
		t.Errorf("expected rounded channels (255, 0, 101), got %v", c)
	}
}

func TestCreateMetalSavedToFile(t *testing.T) {
	s, rec := newTestScene(t)

	step(t, s, click(center(s.createBtn)))
	step(t, s, typed("bar"))
	step(t, s, click(center(s.workBox)))
	step(t, s, typed("4"))
	step(t, s, click(center(s.saveMetalCheck)))
	step(t, s, click(center(s.addBtn)))

	saved, err := rec.LoadMetals()
	if err != nil {
		t.Fatal(err)
	}
	if len(saved) != 1 || saved[0].Name != "bar" {
		t.Errorf("expected bar saved, got %v", saved)
	}
}

func TestCreateMetalRejected(t *testing.T) {
	tests := []struct {
		name   string
		metal  string
		work   string
		status string
	}{
		{"missing work function", "foo", "", "needs a name"},
		{"missing name", "", "3", "needs a name"},
		{"duplicate", "Sodium", "3", "add metal"},
		{"malformed", "foo", "..", "add metal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestScene(t)
			step(t, s, click(center(s.createBtn)))
			s.nameBox.SetText(tt.metal)
			s.workBox.SetText(tt.work)
			step(t, s, click(center(s.addBtn)))

			if !s.createMenu.Visible() {
				t.Error("menu should stay open")
			}
			if !strings.Contains(s.Status(), tt.status) {
				t.Errorf("status %q does not mention %q", s.Status(), tt.status)
			}
			if s.session.Metals().Len() != 4 {
				t.Errorf("metal count changed to %d", s.session.Metals().Len())
			}
		})
	}
}

func TestCloseClearsCreateMenu(t *testing.T) {
	s, _ := newTestScene(t)
	step(t, s, click(center(s.createBtn)))
	step(t, s, typed("abc"))
	step(t, s, click(center(s.closeBtn)))

	if s.createMenu.Visible() {
		t.Error("menu should be hidden")
	}
	if s.nameBox.Text() != "" {
		t.Errorf("name box not cleared: %q", s.nameBox.Text())
	}
}

func TestMenusAreExclusive(t *testing.T) {
	s, _ := newTestScene(t)
	s.root.Modal = false

	step(t, s, click(center(s.createBtn)))
	step(t, s, click(center(s.settingsBtn)))
	if s.settingsMenu.Visible() {
		t.Error("settings must not open over the create menu")
	}
}

func TestSaveAndLoadValues(t *testing.T) {
	s, rec := newTestScene(t)

	s.wavelength.SetValue(300)
	s.intensity.SetValue(80)
	s.stop.SetValue(1.5)
	s.selectMetal("Zinc")
	step(t, s, click(center(s.saveBtn)))

	v, err := rec.LoadValues()
	if err != nil {
		t.Fatalf("values not saved: %v", err)
	}
	if v.Metal != "Zinc" || math.Abs(v.Wavelength-300) > 1e-9 {
		t.Errorf("unexpected values %+v", v)
	}

	s.wavelength.SetValue(700)
	s.intensity.SetValue(10)
	s.stop.SetValue(-2)
	s.selectMetal("Copper")
	// Click below the save button; the two buttons overlap vertically.
	b := s.loadBtn.Bounds()
	step(t, s, click(b.X+5, b.Bottom()-3))

	p := s.Params()
	if math.Abs(p.Wavelength-300) > 1e-9 || math.Abs(p.Intensity-80) > 1e-9 || math.Abs(p.StopVoltage-1.5) > 1e-9 {
		t.Errorf("values not restored: %+v", p)
	}
	if s.session.Current().Name != "Zinc" || s.metalDrop.Selected() != "Zinc" {
		t.Errorf("metal not restored: %s / %s", s.session.Current().Name, s.metalDrop.Selected())
	}
}

func TestLoadValuesWithoutFile(t *testing.T) {
	s, _ := newTestScene(t)
	b := s.loadBtn.Bounds()
	step(t, s, click(b.X+5, b.Bottom()-3))
	if s.Status() != "No saved values" {
		t.Errorf("unexpected status %q", s.Status())
	}
}

func TestSettingsWorkflow(t *testing.T) {
	s, rec := newTestScene(t)

	step(t, s, click(center(s.settingsBtn)))
	if !s.settingsMenu.Visible() {
		t.Fatal("settings should open")
	}
	step(t, s, click(center(s.photonCheck)))
	if s.ShowPhotons() {
		t.Error("photons should hide as soon as the box is unticked")
	}
	step(t, s, click(center(s.saveSettingsBtn)))
	if s.settingsMenu.Visible() {
		t.Error("save settings should close the menu")
	}

	st, err := rec.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if st.ShowPhotons {
		t.Error("setting not persisted")
	}
}

func TestStorageWorkflow(t *testing.T) {
	s, rec := newTestScene(t)
	step(t, s, click(center(s.saveBtn)))

	step(t, s, click(center(s.settingsBtn)))
	step(t, s, click(center(s.storageBtn)))
	if !s.storageMenu.Visible() || s.settingsMenu.Visible() {
		t.Fatal("storage menu should replace settings")
	}

	step(t, s, click(center(s.clearValuesBtn)))
	if !s.clearValuesBtn.Greyed() {
		t.Error("clear values button should grey")
	}
	if _, err := rec.LoadValues(); !errors.Is(err, storage.ErrNoValues) {
		t.Errorf("expected ErrNoValues, got %v", err)
	}

	step(t, s, click(center(s.clearMetalsBtn)))
	if !s.clearMetalsBtn.Greyed() {
		t.Error("clear metals button should grey")
	}

	step(t, s, click(center(s.backBtn)))
	if s.storageMenu.Visible() || !s.settingsMenu.Visible() {
		t.Error("back should return to settings")
	}
}

func TestModalBlocksPanel(t *testing.T) {
	s, _ := newTestScene(t)
	step(t, s, click(center(s.settingsBtn)))
	step(t, s, click(center(s.saveBtn)))
	if s.saveBtn.Clicked() {
		t.Error("panel button clicked through an open menu")
	}
}

func TestStepRejectsInvalidInput(t *testing.T) {
	s, _ := newTestScene(t)
	tests := []struct {
		name string
		in   widget.Input
	}{
		{"nan pointer", idle(math.NaN(), 0)},
		{"inf click", widget.Input{Events: []widget.Event{{Kind: widget.MouseDown, X: math.Inf(1)}}}},
		{"unknown kind", widget.Input{Events: []widget.Event{{Kind: widget.EventKind(99)}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := s.session.Ticks()
			if _, err := s.Step(tt.in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if s.session.Ticks() != before {
				t.Error("invalid frame must not advance the session")
			}
		})
	}
}

func TestStepQuit(t *testing.T) {
	s, _ := newTestScene(t)
	quit, err := s.Step(widget.Input{Events: []widget.Event{{Kind: widget.Quit}}})
	if err != nil {
		t.Fatal(err)
	}
	if !quit {
		t.Error("expected quit")
	}
}

func TestStepRunsPhysics(t *testing.T) {
	s, _ := newTestScene(t)
	for i := 0; i < 120; i++ {
		step(t, s, idle(0, 0))
	}
	if s.session.Ticks() != 120 {
		t.Errorf("expected 120 ticks, got %d", s.session.Ticks())
	}
	if len(s.session.Photons()) == 0 {
		t.Error("expected photons in flight")
	}
	if s.Light().A == 0 {
		t.Error("475nm at 50% should light the beam")
	}
	if !strings.HasPrefix(s.speedLabel.Text(), "Average Speed: ") {
		t.Errorf("unexpected speed label %q", s.speedLabel.Text())
	}
}

func TestDraw(t *testing.T) {
	s, _ := newTestScene(t)
	for i := 0; i < 60; i++ {
		step(t, s, idle(0, 0))
	}

	r := &recorder{}
	s.Draw(r)
	if len(r.ops) == 0 || r.ops[0].kind != "clear" || r.ops[0].c != widget.White {
		t.Fatal("frame must start with a white clear")
	}
	beams := 0
	for _, o := range r.ops {
		if o.kind == "polygon" && o.c == s.Light() {
			beams++
		}
	}
	if s.Light().A == 0 || beams != 1 {
		t.Errorf("expected one light polygon in %v, got %d", s.Light(), beams)
	}
	if !r.hasText("Wavelength: ") || !r.hasText("Metal: ") {
		t.Error("panel labels missing")
	}
	if r.hasText("Name:") {
		t.Error("hidden create menu was drawn")
	}
	circles := r.count("circle")

	s.showPhotons = false
	r = &recorder{}
	s.Draw(r)
	if r.count("circle") >= circles {
		t.Errorf("hiding photons should draw fewer circles: %d vs %d", r.count("circle"), circles)
	}
}

func TestDrawOpenMenuLast(t *testing.T) {
	s, _ := newTestScene(t)
	step(t, s, click(center(s.createBtn)))

	r := &recorder{}
	s.Draw(r)
	lastPolygon, menuTitle := -1, -1
	for i, o := range r.ops {
		if o.kind == "polygon" {
			lastPolygon = i
		}
		if o.kind == "text" && o.text == "Name:" {
			menuTitle = i
		}
	}
	if menuTitle < 0 || menuTitle < lastPolygon {
		t.Errorf("menu must draw over the light: menu at %d, light at %d", menuTitle, lastPolygon)
	}
}

func TestReadout(t *testing.T) {
	s, _ := newTestScene(t)
	step(t, s, idle(0, 0))

	r := s.Readout()
	if r.Band != "cyan" {
		t.Errorf("475nm should be cyan, got %s", r.Band)
	}
	if !r.Calc.Emits {
		t.Error("475nm on sodium emits")
	}
	lines := r.Lines()
	if !strings.Contains(lines[3], "Sodium") {
		t.Errorf("metal line = %q", lines[3])
	}

	s.wavelength.SetValue(800)
	if s.Readout().Calc.Emits {
		t.Error("800nm on sodium does not emit")
	}
}

type fakeFrontend struct {
	inputs []widget.Input
	frames int
	rec    recorder
}

func (f *fakeFrontend) Poll() widget.Input {
	if f.frames < len(f.inputs) {
		return f.inputs[f.frames]
	}
	return widget.Input{Events: []widget.Event{{Kind: widget.Quit}}}
}

func (f *fakeFrontend) BeginFrame() widget.Surface { return &f.rec }
func (f *fakeFrontend) EndFrame() error { f.frames++; return nil }
func (f *fakeFrontend) Paced() bool { return true }

func TestLoopRunsUntilQuit(t *testing.T) {
	s, _ := newTestScene(t)
	fe := &fakeFrontend{inputs: []widget.Input{idle(0, 0), idle(0, 0), idle(0, 0)}}

	if err := NewLoop(s).Run(context.Background(), fe); err != nil {
		t.Fatal(err)
	}
	if fe.frames != 3 {
		t.Errorf("expected 3 frames, got %d", fe.frames)
	}
	if s.session.Ticks() != 4 {
		t.Errorf("expected 4 ticks including the quit frame, got %d", s.session.Ticks())
	}
}

func TestLoopCancelled(t *testing.T) {
	s, _ := newTestScene(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewLoop(s).Run(ctx, &fakeFrontend{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLoopStopsOnFrameError(t *testing.T) {
	s, _ := newTestScene(t)
	fe := &fakeFrontend{inputs: []widget.Input{idle(math.NaN(), 0)}}
	l := NewLoop(s)
	l.OnFrame = func(err error) error { return err }

	if err := l.Run(context.Background(), fe); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
