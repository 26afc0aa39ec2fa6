package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/photosim/internal/physics"
)

// Version is the record format written by this package.
const Version = 1

const (
	KindMetal    = "metal"
	KindValues   = "values"
	KindSettings = "settings"
)

const (
	MetalsFile   = "metals.yaml"
	ValuesFile   = "values.yaml"
	SettingsFile = "settings.yaml"
)

type header struct {
	Version int    `yaml:"version"`
	Kind    string `yaml:"kind"`
}

type MetalRecord struct {
	Version      int     `yaml:"version"`
	Kind         string  `yaml:"kind"`
	Name         string  `yaml:"name"`
	WorkFunction float64 `yaml:"work_function"`
	Color        [3]int  `yaml:"color,flow"`
}

// Metal converts the record, rejecting colour channels outside 0-255 and
// invalid names or work functions.
func (m MetalRecord) Metal() (physics.Metal, error) {
	var ch [3]uint8
	for i, v := range m.Color {
		if v < 0 || v > 255 {
			return physics.Metal{}, fmt.Errorf("%w: %s colour channel %d", physics.ErrInvalidMetal, m.Name, v)
		}
		ch[i] = uint8(v)
	}
	metal := physics.Metal{
		Name:         m.Name,
		WorkFunction: m.WorkFunction,
		Color:        color.RGBA{ch[0], ch[1], ch[2], 255},
		Custom:       true,
	}
	return metal, metal.Validate()
}

// Values are the main panel slider positions and selected metal.
type Values struct {
	Version     int     `yaml:"version"`
	Kind        string  `yaml:"kind"`
	Wavelength  float64 `yaml:"wavelength"`
	Intensity   float64 `yaml:"intensity"`
	StopVoltage float64 `yaml:"stop_voltage"`
	Metal       string  `yaml:"metal"`
	MetalIndex  int     `yaml:"metal_index"`
}

type Settings struct {
	Version     int    `yaml:"version"`
	Kind        string `yaml:"kind"`
	ShowPhotons bool   `yaml:"show_photons"`
}

func DefaultSettings() Settings {
	return Settings{Version: Version, Kind: KindSettings, ShowPhotons: true}
}

// Records reads and writes the user's record files in one directory. Each
// file is a YAML stream of versioned documents.
type Records struct {
	dir string
}

func NewRecords(dir string) *Records {
	return &Records{dir: dir}
}

func (r *Records) Init() error {
	return os.MkdirAll(r.dir, 0755)
}

func (r *Records) Dir() string          { return r.dir }
func (r *Records) MetalsPath() string   { return filepath.Join(r.dir, MetalsFile) }
func (r *Records) ValuesPath() string   { return filepath.Join(r.dir, ValuesFile) }
func (r *Records) SettingsPath() string { return filepath.Join(r.dir, SettingsFile) }

// AppendMetal adds one custom metal to the end of the metals file.
func (r *Records) AppendMetal(m physics.Metal) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := r.Init(); err != nil {
		return err
	}
	rec := MetalRecord{
		Version:      Version,
		Kind:         KindMetal,
		Name:         m.Name,
		WorkFunction: m.WorkFunction,
		Color:        [3]int{int(m.Color.R), int(m.Color.G), int(m.Color.B)},
	}

	f, err := os.OpenFile(r.MetalsPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeDoc(f, rec)
}

// LoadMetals returns the saved custom metals. A missing file holds none.
// On a damaged file the metals decoded before the damage are returned
// with an error wrapping ErrCorrupt.
func (r *Records) LoadMetals() ([]physics.Metal, error) {
	var metals []physics.Metal
	err := readStream(r.MetalsPath(), KindMetal, func(n *yaml.Node) error {
		var rec MetalRecord
		if err := n.Decode(&rec); err != nil {
			return err
		}
		m, err := rec.Metal()
		if err != nil {
			return err
		}
		metals = append(metals, m)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return metals, err
}

func (r *Records) ClearMetals() error { return truncate(r.MetalsPath()) }

func (r *Records) SaveValues(v Values) error {
	v.Version, v.Kind = Version, KindValues
	return r.writeFile(r.ValuesPath(), v)
}

func (r *Records) LoadValues() (Values, error) {
	var (
		v     Values
		found bool
	)
	err := readStream(r.ValuesPath(), KindValues, func(n *yaml.Node) error {
		found = true
		return n.Decode(&v)
	})
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Values{}, fmt.Errorf("%w: %s", ErrNoValues, r.ValuesPath())
	case err != nil:
		return Values{}, err
	case !found:
		return Values{}, fmt.Errorf("%w: %s is empty", ErrNoValues, r.ValuesPath())
	}
	return v, nil
}

func (r *Records) ClearValues() error { return truncate(r.ValuesPath()) }

// LoadSettings reads the settings file, creating it with defaults when it
// does not exist. Unreadable settings fall back to defaults alongside the
// error.
func (r *Records) LoadSettings() (Settings, error) {
	s := DefaultSettings()
	found := false
	err := readStream(r.SettingsPath(), KindSettings, func(n *yaml.Node) error {
		found = true
		return n.Decode(&s)
	})
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, r.SaveSettings(s)
	case err != nil:
		return DefaultSettings(), err
	case !found:
		return DefaultSettings(), nil
	}
	return s, nil
}

func (r *Records) SaveSettings(s Settings) error {
	s.Version, s.Kind = Version, KindSettings
	return r.writeFile(r.SettingsPath(), s)
}

func (r *Records) writeFile(path string, doc any) error {
	if err := r.Init(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := writeDoc(&buf, doc); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func writeDoc(w io.Writer, doc any) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "---\n"); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// readStream calls fn for each document of path after checking its
// version and kind.
func readStream(path, kind string, fn func(*yaml.Node) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	for i := 0; ; i++ {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("%w: %s document %d: %v", ErrCorrupt, path, i, err)
		}

		var h header
		if err := doc.Decode(&h); err != nil {
			return fmt.Errorf("%w: %s document %d: %v", ErrCorrupt, path, i, err)
		}
		if h.Version < 1 || h.Version > Version {
			return fmt.Errorf("%w: %s document %d has version %d", ErrUnsupportedVersion, path, i, h.Version)
		}
		if h.Kind != kind {
			return fmt.Errorf("%w: %s document %d is %q, want %q", ErrWrongKind, path, i, h.Kind, kind)
		}
		if err := fn(&doc); err != nil {
			return fmt.Errorf("%w: %s document %d: %w", ErrCorrupt, path, i, err)
		}
	}
}

// truncate empties path, creating it if needed.
func truncate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, nil, 0644)
}
