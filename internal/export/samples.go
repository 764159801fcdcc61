package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/hqrviz/internal/hqr"
)

// ExportData is the JSON document written by WriteJSON.
type ExportData struct {
	Mode       string               `json:"mode"`
	Complexity float64              `json:"complexity"`
	Scale      float64              `json:"scale"`
	Wave       []hqr.WaveSample     `json:"wave"`
	Manifold   []hqr.ManifoldSample `json:"manifold"`
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// WriteWaveCSV writes one header row and one row per sample.
func WriteWaveCSV(w io.Writer, samples []hqr.WaveSample) error {
	cw := csv.NewWriter(w)
	header := []string{"x"}
	for _, f := range hqr.WaveFields {
		header = append(header, string(f))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{formatFloat(s.X)}
		for _, f := range hqr.WaveFields {
			v, _ := s.Value(f)
			row = append(row, formatFloat(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteManifoldCSV(w io.Writer, samples []hqr.ManifoldSample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"u", "v", "x", "y", "z", "value"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			formatFloat(s.U), formatFloat(s.V),
			formatFloat(s.X), formatFloat(s.Y), formatFloat(s.Z),
			formatFloat(s.Value),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the frame's samples as one indented document.
func WriteJSON(w io.Writer, frame hqr.Frame) error {
	data := ExportData{
		Mode:       frame.Mode.String(),
		Complexity: frame.Mode.Complexity(),
		Scale:      frame.Mode.Scale(),
		Wave:       frame.Wave,
		Manifold:   frame.Manifold,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
