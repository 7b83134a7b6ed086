package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/gravbox/internal/automation"
)

type ExportData struct {
	Scenario string             `json:"scenario"`
	Seed     int64              `json:"seed"`
	Ticks    int                `json:"ticks"`
	Final    int                `json:"final_bodies"`
	Removed  int                `json:"removed"`
	Bodies   []float64          `json:"bodies"`
	Energy   []float64          `json:"kinetic_energy"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes the full report, series included, as indented JSON.
func ExportJSON(w io.Writer, r *automation.Report) error {
	data := ExportData{
		Scenario: r.Name,
		Seed:     r.Seed,
		Ticks:    r.Ticks,
		Final:    r.Final,
		Removed:  r.Removed,
		Bodies:   r.Bodies,
		Energy:   r.Energy,
		Metrics:  r.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
