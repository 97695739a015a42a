package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/springies/internal/sim"
)

type ExportData struct {
	Model    string             `json:"model"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Masses   []string           `json:"masses"`
	Steps    int                `json:"steps"`
	Times    []float64          `json:"times"`
	Frames   [][]float64        `json:"frames"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes a full run, frames included, as one JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, frames []sim.Frame, times []float64) error {
	data := ExportData{
		Model:    meta.Model,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Masses:   meta.Masses,
		Steps:    len(times),
		Times:    times,
		Frames:   make([][]float64, len(frames)),
		Metrics:  meta.Metrics,
	}
	for i, f := range frames {
		data.Frames[i] = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONFile is ExportJSON to a new file at path.
func ExportJSONFile(path string, meta *RunMetadata, frames []sim.Frame, times []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportJSON(f, meta, frames, times)
}
