package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/photosim/internal/physics"
)

type ExportData struct {
	Run   RunMetadata          `json:"run"`
	Trace []physics.StepReport `json:"trace"`
}

// ExportJSON writes a run and its trace as one indented JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, trace []physics.StepReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: meta, Trace: trace})
}
