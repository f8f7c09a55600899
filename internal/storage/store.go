package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/ballsim/internal/config"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var frameHeader = []string{"frame", "dt", "fps", "sim_steps", "bodies", "peak_speed", "peak_pressure"}

// Store keeps run telemetry under one base directory, one subdirectory per
// run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Frames    int                `json:"frames"`
	Config    *config.Config     `json:"config"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the recorder's frames and summary as a new run and returns
// its ID.
func (s *Store) Save(name string, cfg *config.Config, rec *Recorder) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: now,
		Frames:    len(rec.Frames()),
		Config:    cfg,
		Metrics:   rec.Metrics(),
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), rec.Frames()); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeFrames(path string, frames []FrameRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", framesFile, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(frameHeader); err != nil {
		return err
	}
	for _, fr := range frames {
		row := []string{
			strconv.Itoa(fr.Frame),
			strconv.FormatFloat(fr.Dt, 'f', 6, 64),
			strconv.FormatFloat(fr.FPS, 'f', 3, 64),
			strconv.Itoa(fr.SimSteps),
			strconv.Itoa(fr.Bodies),
			strconv.FormatFloat(fr.PeakSpeed, 'f', 3, 64),
			strconv.FormatFloat(fr.PeakPressure, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first. A missing base directory
// yields an empty list.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads frames.csv of a run. Malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s frames: %w", runID, err)
	}
	if len(records) < 2 {
		return []FrameRecord{}, nil
	}

	frames := make([]FrameRecord, 0, len(records)-1)
	for _, rec := range records[1:] {
		fr, ok := parseFrame(rec)
		if !ok {
			continue
		}
		frames = append(frames, fr)
	}
	return frames, nil
}

func parseFrame(rec []string) (FrameRecord, bool) {
	if len(rec) != len(frameHeader) {
		return FrameRecord{}, false
	}
	var (
		fr   FrameRecord
		errs [7]error
	)
	fr.Frame, errs[0] = strconv.Atoi(rec[0])
	fr.Dt, errs[1] = strconv.ParseFloat(rec[1], 64)
	fr.FPS, errs[2] = strconv.ParseFloat(rec[2], 64)
	fr.SimSteps, errs[3] = strconv.Atoi(rec[3])
	fr.Bodies, errs[4] = strconv.Atoi(rec[4])
	fr.PeakSpeed, errs[5] = strconv.ParseFloat(rec[5], 64)
	fr.PeakPressure, errs[6] = strconv.ParseFloat(rec[6], 64)
	for _, err := range errs {
		if err != nil {
			return FrameRecord{}, false
		}
	}
	return fr, true
}
