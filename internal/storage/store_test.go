package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/sim"
)

func sampleRecorder() *Recorder {
	rec := NewRecorder(60)
	rec.OnFrame(sim.Stats{Frame: 1, Dt: 0.016, FrameRate: 62, FPS: 62, SimSteps: 20, Bodies: 10, PeakSpeed: 90, PeakPressure: 0.2})
	rec.OnFrame(sim.Stats{Frame: 2, Dt: 0.016, FrameRate: 40, FPS: 51, SimSteps: 19, Bodies: 11, PeakSpeed: 120, PeakPressure: 0.1})
	return rec
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Seed = 42

	runID, err := st.Save("test", cfg, sampleRecorder())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != "test" {
		t.Errorf("expected name 'test', got '%s'", meta.Name)
	}
	if meta.Config == nil || meta.Config.Seed != 42 {
		t.Errorf("config not echoed: %+v", meta.Config)
	}
	if meta.Frames != 2 {
		t.Errorf("expected 2 frames, got %d", meta.Frames)
	}
	if meta.Metrics["peak_speed"] != 120 {
		t.Errorf("expected peak_speed 120, got %f", meta.Metrics["peak_speed"])
	}
	if meta.Metrics["on_target"] != 0.5 {
		t.Errorf("expected on_target 0.5, got %f", meta.Metrics["on_target"])
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[1].SimSteps != 19 || frames[1].Bodies != 11 {
		t.Errorf("frame 2 mismatch: %+v", frames[1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for _, name := range []string{"a", "b"} {
		if _, err := st.Save(name, config.DefaultConfig(), NewRecorder(60)); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Name != "a" || runs[1].Name != "b" {
		t.Errorf("runs not in save order: %s, %s", runs[0].Name, runs[1].Name)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runID, err := st.Save("layout", config.DefaultConfig(), sampleRecorder())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "frames.csv"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, runID, "frames.csv"))
	if err != nil {
		t.Fatal(err)
	}
	want := "frame,dt,fps,sim_steps,bodies,peak_speed,peak_pressure\n"
	if !bytes.HasPrefix(data, []byte(want)) {
		t.Errorf("unexpected header: %q", data)
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("Load: expected ErrNoRun, got %v", err)
	}
	if _, err := st.LoadFrames("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("LoadFrames: expected ErrNoRun, got %v", err)
	}
}

func TestLoadFramesSkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	runID, err := st.Save("bad", config.DefaultConfig(), sampleRecorder())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	path := filepath.Join(dir, runID, "frames.csv")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("x,1,2,3,4,5,6\n3,0.1\n")
	f.Close()

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 {
		t.Errorf("expected malformed rows skipped, got %d frames", len(frames))
	}
}

func TestExport(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save("export", config.DefaultConfig(), sampleRecorder())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.Export(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if got.ID != runID {
		t.Errorf("expected id %s, got %s", runID, got.ID)
	}
	if len(got.Series["sim_steps"]) != 2 || got.Series["sim_steps"][0] != 20 {
		t.Errorf("unexpected sim_steps series: %v", got.Series["sim_steps"])
	}
}

func TestSeriesUnknown(t *testing.T) {
	if Series(sampleRecorder().Frames(), "nope") != nil {
		t.Error("expected nil for unknown column")
	}
}
