package physics

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// WorkFunctionUnit is the scale of work functions typed into the metal
// editor ("x 10^-19 J").
const WorkFunctionUnit = 1e-19

type Metal struct {
	Name         string
	WorkFunction float64 // J
	Color        color.RGBA
	Custom       bool
}

func (m Metal) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidMetal)
	}
	if m.WorkFunction <= 0 || math.IsNaN(m.WorkFunction) || math.IsInf(m.WorkFunction, 0) {
		return fmt.Errorf("%w: %s work function %g", ErrInvalidMetal, m.Name, m.WorkFunction)
	}
	return nil
}

// ParseWorkFunction reads a work function typed in units of 1e-19 J.
// Malformed or non-positive input is an error.
func ParseWorkFunction(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("%w: empty work function", ErrInvalidMetal)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: work function %q: %v", ErrInvalidMetal, text, err)
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: work function must be positive, got %q", ErrInvalidMetal, text)
	}
	return v * WorkFunctionUnit, nil
}

func DefaultMetals() []Metal {
	return []Metal{
		{Name: "Sodium", WorkFunction: 3.65e-19, Color: color.RGBA{100, 100, 100, 255}},
		{Name: "Copper", WorkFunction: 7.53e-19, Color: color.RGBA{145, 88, 4, 255}},
		{Name: "Zinc", WorkFunction: 6.89e-19, Color: color.RGBA{185, 195, 185, 255}},
		{Name: "Magnesium", WorkFunction: 5.90e-19, Color: color.RGBA{205, 205, 205, 255}},
	}
}

// Metals is an ordered registry with unique names.
type Metals struct {
	list []Metal
}

func NewMetals(ms ...Metal) (*Metals, error) {
	r := &Metals{}
	for _, m := range ms {
		if err := r.Add(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Metals) Add(m Metal) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if _, err := r.Find(m.Name); err == nil {
		return fmt.Errorf("%w: %s", ErrDuplicateMetal, m.Name)
	}
	r.list = append(r.list, m)
	return nil
}

func (r *Metals) Find(name string) (Metal, error) {
	for _, m := range r.list {
		if m.Name == name {
			return m, nil
		}
	}
	return Metal{}, fmt.Errorf("%w: %s", ErrUnknownMetal, name)
}

func (r *Metals) Index(name string) int {
	for i, m := range r.list {
		if m.Name == name {
			return i
		}
	}
	return -1
}

func (r *Metals) At(i int) (Metal, error) {
	if i < 0 || i >= len(r.list) {
		return Metal{}, fmt.Errorf("%w: index %d", ErrUnknownMetal, i)
	}
	return r.list[i], nil
}

// RemoveCustom drops every metal added at runtime, keeping the built-in
// ones.
func (r *Metals) RemoveCustom() int {
	kept := r.list[:0]
	removed := 0
	for _, m := range r.list {
		if m.Custom {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	r.list = kept
	return removed
}

func (r *Metals) Names() []string {
	names := make([]string, len(r.list))
	for i, m := range r.list {
		names[i] = m.Name
	}
	return names
}

func (r *Metals) All() []Metal { return append([]Metal(nil), r.list...) }
func (r *Metals) Len() int     { return len(r.list) }
