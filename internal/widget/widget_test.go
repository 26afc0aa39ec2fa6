package widget

import (
	"errors"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/photosim/internal/geom"
)

func TestSetBackgroundRejectsBadChannel(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b int
		wantErr bool
	}{
		{"valid", 10, 20, 30, false},
		{"red high", 256, 0, 0, true},
		{"green negative", 0, -1, 0, true},
		{"blue high", 0, 0, 300, true},
		{"edges", 0, 255, 255, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBase(0, 0, 10, 10, nil)
			err := b.SetBackground(tt.r, tt.g, tt.b)
			if tt.wantErr {
				if !errors.Is(err, ErrColorChannel) {
					t.Fatalf("expected ErrColorChannel, got %v", err)
				}
				if b.Background() != Grey {
					t.Errorf("background changed to %v", b.Background())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := [3]uint8{uint8(tt.r), uint8(tt.g), uint8(tt.b)}
			got := b.Background()
			if [3]uint8{got.R, got.G, got.B} != want {
				t.Errorf("expected %v, got %v", want, got)
			}
		})
	}
}

func TestSwatchSetRGB(t *testing.T) {
	cs, err := NewColorSwatch(0, 0, 100, 100, nil, 1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := cs.SetRGB(0, 0, 256); !errors.Is(err, ErrColorChannel) {
		t.Fatalf("expected ErrColorChannel, got %v", err)
	}
	if c := cs.Color(); c.R != 1 || c.G != 2 || c.B != 3 {
		t.Errorf("colour changed to %v", c)
	}
	if _, err := NewColorSwatch(0, 0, 1, 1, nil, -1, 0, 0); err == nil {
		t.Error("expected error for negative channel")
	}
}

func TestButtonDebounce(t *testing.T) {
	b := NewButton(0, 0, nil, "Go")
	if r := b.Bounds(); r.W != 25 || r.H != 25 {
		t.Fatalf("expected 25x25 button, got %vx%v", r.W, r.H)
	}

	b.OnClick(5, 5)
	if !b.Clicked() {
		t.Fatal("expected click")
	}
	b.OnUnclick()
	if !b.Clicked() {
		t.Error("release should not clear the click before the next update")
	}

	b.Update(5, 5)
	if b.Clicked() {
		t.Error("click should clear on update")
	}

	for i := 1; i < DebounceTicks; i++ {
		b.OnClick(5, 5)
		if b.Clicked() {
			t.Fatalf("second click registered %d ticks later", i)
		}
		b.Update(5, 5)
	}
	if b.Cooldown() != 0 {
		t.Fatalf("expected cooldown 0, got %d", b.Cooldown())
	}
	b.OnClick(5, 5)
	if !b.Clicked() {
		t.Error("expected click after cooldown")
	}
}

func TestButtonMissAndGreyed(t *testing.T) {
	b := NewButton(10, 10, nil, "Add")
	b.OnClick(0, 0)
	if b.Clicked() {
		t.Error("click outside registered")
	}

	b.SetGreyed(true)
	b.OnClick(12, 12)
	if b.Clicked() {
		t.Error("greyed button clicked")
	}

	rec := &recorder{}
	b.Draw(rec)
	if rec.calls[0].c != greyedGrey {
		t.Errorf("expected greyed background, got %v", rec.calls[0].c)
	}
}

func TestSliderValue(t *testing.T) {
	s := NewSlider(150, 5, 200, 25, nil, 100, 850, 0.5, 0)
	if v := s.Value(); v != 475 {
		t.Fatalf("expected 475, got %f", v)
	}

	s.OnClick(250, 10)
	if !s.Captured() {
		t.Fatal("expected pointer capture")
	}

	tests := []struct {
		mouseX float64
		want   float64
	}{
		{1000, 850},
		{-5, 100},
		{150, 100},
		{350, 850},
		{200, 287.5},
	}
	for _, tt := range tests {
		s.Update(tt.mouseX, 0)
		if got := s.Value(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("mouse %v: expected %v, got %v", tt.mouseX, tt.want, got)
		}
	}

	s.OnUnclick()
	s.Update(300, 0)
	if got := s.Value(); math.Abs(got-287.5) > 1e-9 {
		t.Errorf("released slider moved to %v", got)
	}
}

func TestSliderMonotonic(t *testing.T) {
	s := NewSlider(0, 0, 100, 25, nil, -3, 3, 0, 1)
	s.OnClick(0, 10)
	prev := math.Inf(-1)
	for x := 0.0; x <= 100; x += 5 {
		s.Update(x, 0)
		v := s.Value()
		if v < prev {
			t.Fatalf("value decreased at x=%v", x)
		}
		prev = v
	}
	if prev != 3 {
		t.Errorf("expected 3 at right edge, got %v", prev)
	}
}

func TestSliderSetValueAndLabel(t *testing.T) {
	s := NewSlider(300, 550, 200, 25, nil, -3, 3, 0.5, 1)
	s.SetValue(1.25)
	if got := s.Label(); got != "1.2" && got != "1.3" {
		t.Errorf("unexpected label %q", got)
	}
	s.SetValue(10)
	if s.Value() != 3 {
		t.Errorf("expected clamp to 3, got %v", s.Value())
	}
	s.SetValue(-10)
	if s.Value() != -3 {
		t.Errorf("expected clamp to -3, got %v", s.Value())
	}
}

func TestDropdownSelection(t *testing.T) {
	d := NewDropdown(90, 90, 120, 25, nil, []string{"Sodium", "Copper", "Zinc", "Magnesium"})

	if d.Click(100, 140) {
		t.Error("closed list should ignore clicks on the list area")
	}
	if d.IsOpen() {
		t.Fatal("list opened without clicking the arrow")
	}

	d.Click(215, 100)
	if !d.IsOpen() {
		t.Fatal("expected list to open")
	}

	if !d.Click(100, 143) {
		t.Fatal("expected selection change")
	}
	if d.Current() != 1 || d.Selected() != "Copper" {
		t.Errorf("expected Copper, got %d %q", d.Current(), d.Selected())
	}
	if d.IsOpen() {
		t.Error("expected list to close after selection")
	}

	d.Click(215, 100)
	d.Click(215, 100)
	if d.IsOpen() {
		t.Error("arrow should close an open list")
	}
}

func TestDropdownOnChange(t *testing.T) {
	d := NewDropdown(0, 0, 100, 20, nil, []string{"a", "b", "c"})
	var got string
	d.OnChange = func(_ int, opt string) { got = opt }

	d.OnClick(105, 5)
	d.OnClick(50, 65)
	if got != "c" {
		t.Errorf("expected callback with c, got %q", got)
	}

	if err := d.SetCurrent(3); !errors.Is(err, ErrOptionIndex) {
		t.Errorf("expected ErrOptionIndex, got %v", err)
	}
	d.SetOptions([]string{"x"})
	if d.Current() != 0 {
		t.Errorf("expected index reset, got %d", d.Current())
	}
}

func TestCheckboxToggle(t *testing.T) {
	cb := NewCheckbox(10, 10, nil)
	cb.OnClick(15, 15)
	if !cb.On() || !cb.Changed() {
		t.Fatal("expected checkbox on and changed")
	}
	cb.Update(0, 0)
	if cb.Changed() {
		t.Error("changed flag should clear on update")
	}
	cb.OnClick(15, 15)
	if cb.On() {
		t.Error("expected checkbox off")
	}
	cb.OnClick(100, 100)
	if cb.On() {
		t.Error("miss toggled the checkbox")
	}
}

func TestLoadImageMissing(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadImageButton(0, 0, nil, dir, "options"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("expected ErrAssetNotFound, got %v", err)
	}
	if _, err := LoadCheckbox(0, 0, nil, dir, "on", "off"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestLoadImageButton(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "options.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 32, 16))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	b, err := LoadImageButton(730, 10, nil, dir, "options")
	if err != nil {
		t.Fatal(err)
	}
	if r := b.Bounds(); r != geom.R(730, 10, 42, 26) {
		t.Errorf("unexpected bounds %+v", r)
	}
}
