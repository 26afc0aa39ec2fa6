package storage

import (
	"errors"
	"image/color"
	"os"
	"testing"

	"github.com/san-kum/photosim/internal/physics"
)

func TestMetalsRoundTrip(t *testing.T) {
	r := NewRecords(t.TempDir())

	metals, err := r.LoadMetals()
	if err != nil || len(metals) != 0 {
		t.Fatalf("expected no metals from missing file, got %v %v", metals, err)
	}

	in := []physics.Metal{
		{Name: "Gold", WorkFunction: 8.2e-19, Color: color.RGBA{212, 175, 55, 255}},
		{Name: "Iron", WorkFunction: 7.2e-19, Color: color.RGBA{90, 90, 90, 255}},
	}
	for _, m := range in {
		if err := r.AppendMetal(m); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	out, err := r.LoadMetals()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 metals, got %d", len(out))
	}
	for i := range in {
		if out[i].Name != in[i].Name || out[i].WorkFunction != in[i].WorkFunction || out[i].Color != in[i].Color {
			t.Errorf("metal %d: expected %+v, got %+v", i, in[i], out[i])
		}
		if !out[i].Custom {
			t.Errorf("loaded metal %s should be custom", out[i].Name)
		}
	}

	if err := r.ClearMetals(); err != nil {
		t.Fatal(err)
	}
	out, err = r.LoadMetals()
	if err != nil || len(out) != 0 {
		t.Errorf("expected empty file after clear, got %v %v", out, err)
	}
}

func TestAppendMetalRejectsInvalid(t *testing.T) {
	r := NewRecords(t.TempDir())
	if err := r.AppendMetal(physics.Metal{Name: "x"}); !errors.Is(err, physics.ErrInvalidMetal) {
		t.Errorf("expected ErrInvalidMetal, got %v", err)
	}
}

func TestCorruptTail(t *testing.T) {
	r := NewRecords(t.TempDir())
	if err := r.AppendMetal(physics.Metal{Name: "Gold", WorkFunction: 8.2e-19}); err != nil {
		t.Fatal(err)
	}

	f, err := os.OpenFile(r.MetalsPath(), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("---\nname: [unterminated\n")
	f.Close()

	metals, err := r.LoadMetals()
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if len(metals) != 1 || metals[0].Name != "Gold" {
		t.Errorf("expected records before the damage, got %+v", metals)
	}
}

func TestLoadMetalsRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"channel too high", "version: 1\nkind: metal\nname: Foo\nwork_function: 4e-19\ncolor: [300, 0, 0]\n"},
		{"negative channel", "version: 1\nkind: metal\nname: Foo\nwork_function: 4e-19\ncolor: [0, -5, 0]\n"},
		{"no work function", "version: 1\nkind: metal\nname: Foo\ncolor: [1, 2, 3]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecords(t.TempDir())
			if err := r.AppendMetal(physics.Metal{Name: "Gold", WorkFunction: 8.2e-19}); err != nil {
				t.Fatal(err)
			}
			f, err := os.OpenFile(r.MetalsPath(), os.O_APPEND|os.O_WRONLY, 0644)
			if err != nil {
				t.Fatal(err)
			}
			f.WriteString("---\n" + tt.doc)
			f.Close()

			metals, err := r.LoadMetals()
			if !errors.Is(err, ErrCorrupt) || !errors.Is(err, physics.ErrInvalidMetal) {
				t.Fatalf("expected ErrCorrupt wrapping ErrInvalidMetal, got %v", err)
			}
			if len(metals) != 1 || metals[0].Name != "Gold" {
				t.Errorf("expected only the valid record, got %+v", metals)
			}
		})
	}
}

func TestVersionAndKind(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"future version", "---\nversion: 2\nkind: metal\nname: X\nwork_function: 1e-19\n", ErrUnsupportedVersion},
		{"missing version", "---\nkind: metal\nname: X\n", ErrUnsupportedVersion},
		{"wrong kind", "---\nversion: 1\nkind: settings\nshow_photons: true\n", ErrWrongKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecords(t.TempDir())
			if err := os.WriteFile(r.MetalsPath(), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := r.LoadMetals(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValues(t *testing.T) {
	r := NewRecords(t.TempDir())

	if _, err := r.LoadValues(); !errors.Is(err, ErrNoValues) {
		t.Fatalf("expected ErrNoValues, got %v", err)
	}

	in := Values{Wavelength: 420, Intensity: 75, StopVoltage: -1.5, Metal: "Zinc", MetalIndex: 2}
	if err := r.SaveValues(in); err != nil {
		t.Fatal(err)
	}
	out, err := r.LoadValues()
	if err != nil {
		t.Fatal(err)
	}
	if out.Wavelength != 420 || out.Intensity != 75 || out.StopVoltage != -1.5 || out.Metal != "Zinc" || out.MetalIndex != 2 {
		t.Errorf("unexpected values %+v", out)
	}
	if out.Version != Version || out.Kind != KindValues {
		t.Errorf("unexpected header %d %s", out.Version, out.Kind)
	}

	if err := r.ClearValues(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.LoadValues(); !errors.Is(err, ErrNoValues) {
		t.Errorf("expected ErrNoValues after clear, got %v", err)
	}
}

func TestSettingsDefaultsCreated(t *testing.T) {
	r := NewRecords(t.TempDir())

	s, err := r.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if !s.ShowPhotons {
		t.Error("photons should be shown by default")
	}
	if _, err := os.Stat(r.SettingsPath()); err != nil {
		t.Errorf("expected settings file to be created: %v", err)
	}

	s.ShowPhotons = false
	if err := r.SaveSettings(s); err != nil {
		t.Fatal(err)
	}
	s, err = r.LoadSettings()
	if err != nil || s.ShowPhotons {
		t.Errorf("expected saved setting, got %+v %v", s, err)
	}
}

func TestSettingsCorruptFallsBack(t *testing.T) {
	r := NewRecords(t.TempDir())
	if err := os.WriteFile(r.SettingsPath(), []byte("---\nversion: 1\nkind: settings\nshow_photons: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := r.LoadSettings()
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
	if !s.ShowPhotons {
		t.Error("expected defaults on corrupt settings")
	}
}
