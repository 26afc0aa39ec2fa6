package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/photosim/internal/physics"
)

// RunStore keeps headless runs as <dir>/<id>/metadata.json plus trace.csv.
type RunStore struct {
	baseDir string
}

func NewRunStore(baseDir string) *RunStore {
	return &RunStore{baseDir: baseDir}
}

func (s *RunStore) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Name         string             `json:"name,omitempty"`
	Timestamp    time.Time          `json:"timestamp"`
	Metal        string             `json:"metal"`
	WorkFunction float64            `json:"work_function"`
	Wavelength   float64            `json:"wavelength_nm"`
	Intensity    float64            `json:"intensity"`
	StopVoltage  float64            `json:"stop_voltage"`
	Seed         int64              `json:"seed"`
	Ticks        int                `json:"ticks"`
	TickRate     float64            `json:"tick_rate"`
	Metrics      map[string]float64 `json:"metrics"`
}

var traceHeader = []string{
	"tick", "emitted", "absorbed", "liberated", "collected", "escaped",
	"photons", "electrons", "average_speed",
}

// Save writes a run and returns its id. meta.ID and meta.Timestamp are
// filled in.
func (s *RunStore) Save(meta RunMetadata, trace []physics.StepReport) (string, error) {
	now := time.Now()
	label := meta.Name
	if label == "" {
		label = meta.Metal
	}
	meta.ID = fmt.Sprintf("%s_%d", slug(label), now.UnixNano())
	meta.Timestamp = now
	meta.Ticks = len(trace)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteTrace(csvFile, trace); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func WriteTrace(out io.Writer, trace []physics.StepReport) error {
	w := csv.NewWriter(out)
	if err := w.Write(traceHeader); err != nil {
		return err
	}
	for _, r := range trace {
		emitted := "0"
		if r.Emitted {
			emitted = "1"
		}
		row := []string{
			strconv.Itoa(r.Tick),
			emitted,
			strconv.Itoa(r.Absorbed),
			strconv.Itoa(r.Liberated),
			strconv.Itoa(r.Collected),
			strconv.Itoa(r.Escaped),
			strconv.Itoa(r.Photons),
			strconv.Itoa(r.Electrons),
			strconv.FormatFloat(r.AverageSpeed, 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *RunStore) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *RunStore) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *RunStore) LoadTrace(runID string) ([]physics.StepReport, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()
	return ReadTrace(file)
}

func ReadTrace(in io.Reader) ([]physics.StepReport, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = len(traceHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(records) < 2 {
		return []physics.StepReport{}, nil
	}

	trace := make([]physics.StepReport, 0, len(records)-1)
	for i, rec := range records[1:] {
		ints := make([]int, 8)
		for j := 0; j < 8; j++ {
			v, err := strconv.Atoi(rec[j])
			if err != nil {
				return trace, fmt.Errorf("%w: row %d: %v", ErrCorrupt, i+1, err)
			}
			ints[j] = v
		}
		speed, err := strconv.ParseFloat(rec[8], 64)
		if err != nil {
			return trace, fmt.Errorf("%w: row %d: %v", ErrCorrupt, i+1, err)
		}
		trace = append(trace, physics.StepReport{
			Tick:         ints[0],
			Emitted:      ints[1] != 0,
			Absorbed:     ints[2],
			Liberated:    ints[3],
			Collected:    ints[4],
			Escaped:      ints[5],
			Photons:      ints[6],
			Electrons:    ints[7],
			AverageSpeed: speed,
		})
	}
	return trace, nil
}

func slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "run"
	}
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return '-'
	}, name)
}
