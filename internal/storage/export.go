package storage

import (
	"encoding/json"
	"io"
)

// ExportData is a stored run flattened into one JSON document.
type ExportData struct {
	RunMetadata
	Series map[string][]float64 `json:"series"`
}

// Export writes run runID as indented JSON to w.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	data := ExportData{RunMetadata: *meta, Series: make(map[string][]float64)}
	for _, name := range []string{"fps", "sim_steps", "bodies", "peak_speed", "peak_pressure"} {
		data.Series[name] = Series(frames, name)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Series extracts one column of frames by its frames.csv name. Unknown names
// yield nil.
func Series(frames []FrameRecord, name string) []float64 {
	pick := map[string]func(FrameRecord) float64{
		"dt":            func(f FrameRecord) float64 { return f.Dt },
		"fps":           func(f FrameRecord) float64 { return f.FPS },
		"sim_steps":     func(f FrameRecord) float64 { return float64(f.SimSteps) },
		"bodies":        func(f FrameRecord) float64 { return float64(f.Bodies) },
		"peak_speed":    func(f FrameRecord) float64 { return f.PeakSpeed },
		"peak_pressure": func(f FrameRecord) float64 { return f.PeakPressure },
	}[name]
	if pick == nil {
		return nil
	}
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = pick(f)
	}
	return out
}
