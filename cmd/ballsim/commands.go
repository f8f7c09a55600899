package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ballsim/internal/analysis"
	"github.com/san-kum/ballsim/internal/automation"
	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/export"
	"github.com/san-kum/ballsim/internal/gui"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/storage"
	"github.com/san-kum/ballsim/internal/stream"
	"github.com/san-kum/ballsim/internal/vec"
	"github.com/san-kum/ballsim/internal/viz"
	"github.com/spf13/cobra"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var script *automation.Script
	if scriptFile != "" {
		if script, err = automation.LoadScript(scriptFile); err != nil {
			return err
		}
	}

	rec := storage.NewRecorder(cfg.TargetFPS)
	rc := sim.RunConfig{Frames: runFrames, Measure: measure}
	logger.Info("running", "dims", cfg.Dimensions, "bodies", cfg.BodyCount, "frames", runFrames, "script", scriptFile)
	start := time.Now()

	var final sim.Stats
	var svg string
	if svgFile != "" {
		final, svg, err = automation.RunHeadlessSVG(cmd.Context(), cfg, rc, script, svgScale, rec)
	} else {
		final, err = automation.RunHeadless(cmd.Context(), cfg, rc, script, rec)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	logger.Info("run finished", "frames", final.Frame, "bodies", final.Bodies, "elapsed", elapsed)

	if svgFile != "" {
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		logger.Info("wrote svg", "path", svgFile)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d\n", final.Frame)
	fmt.Printf("bodies: %d\n", final.Bodies)
	fmt.Printf("sim steps: %d\n", final.SimSteps)
	fmt.Println("\nmetrics:")
	metrics := rec.Metrics()
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, metrics[name])
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(runName, cfg, rec)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tDIMS\tBODIES\tFRAMES\tMEAN FPS\tMEAN STEPS")
	for _, run := range runs {
		dimensions, count := 0, 0
		if run.Config != nil {
			dimensions, count = run.Config.Dimensions, run.Config.BodyCount
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.1f\t%.1f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			dimensions,
			count,
			run.Frames,
			run.Metrics["mean_fps"],
			run.Metrics["mean_sim_steps"],
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n\n", len(frames))

	for i, name := range series {
		data := storage.Series(frames, name)
		if data == nil {
			return fmt.Errorf("unknown series: %s", name)
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		))
		fmt.Println()

		if i == 0 && svgFile != "" {
			if err := os.WriteFile(svgFile, []byte(export.SeriesToSVG(data, 800, 200, "#00ff88")), 0644); err != nil {
				return fmt.Errorf("write svg: %w", err)
			}
			logger.Info("wrote svg", "path", svgFile, "series", name)
		}
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	data := storage.Series(frames, analyzeSeries)
	if data == nil {
		return fmt.Errorf("unknown series: %s", analyzeSeries)
	}

	ps, err := analysis.PowerSpectrum(data)
	if err != nil {
		return err
	}
	rate := analysis.SampleRate(storage.Series(frames, "dt"))

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("series: %s, %d frames at %.1f hz\n\n", analyzeSeries, len(data), rate)
	fmt.Println(asciigraph.Plot(ps,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+analyzeSeries+")"),
	))
	fmt.Println()

	peak := analysis.Dominant(ps, len(data), rate)
	if peak.Bin == 0 {
		fmt.Println("no oscillation found")
		return nil
	}
	fmt.Printf("dominant frequency: %.3f hz\n", peak.Frequency)
	fmt.Printf("period: %.3f s (%.1f frames)\n", peak.Period, peak.Period*rate)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).Export(os.Stdout, args[0])
}

var benchBodyCounts = []int{250, 500, 1000, 2000}
var benchStepCounts = []int{5, 20}

// benchWorld times fixed-step ensembles. Step control is pinned so every
// row does the same amount of work.
func benchWorld(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	counts, steps := benchBodyCounts, benchStepCounts
	if cmd.Flags().Changed("bodies") {
		counts = []int{cfg.BodyCount}
	}
	if cmd.Flags().Changed("sim-steps") {
		steps = []int{cfg.SimSteps}
	}

	fmt.Printf("benchmarking %d-D, %d frames x %d worlds\n\n", cfg.Dimensions, benchFrames, benchRuns)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tSTEPS\tTIME\tFRAMES/SEC\tPEAK SPEED")

	for _, n := range counts {
		for _, s := range steps {
			row := cfg.Clone()
			row.BodyCount, row.SimSteps, row.AutoSimSteps = n, s, false
			if err := row.Validate(); err != nil {
				return err
			}

			start := time.Now()
			var results []sim.Stats
			if row.Dimensions == 3 {
				results, err = ensemble[vec.Vec3](cmd, row)
			} else {
				results, err = ensemble[vec.Vec2](cmd, row)
			}
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			peak := 0.0
			for _, r := range results {
				peak = max(peak, r.PeakSpeed)
			}
			perSec := float64(benchFrames*len(results)) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.1f\n", n, s, elapsed.Round(time.Millisecond), perSec, peak)
		}
	}
	return w.Flush()
}

func ensemble[V vec.Vector[V]](cmd *cobra.Command, cfg *config.Config) ([]sim.Stats, error) {
	p, err := sim.ParamsFromConfig[V](cfg)
	if err != nil {
		return nil, err
	}
	return sim.NewEnsemble(p, benchRuns).Run(cmd.Context(), sim.RunConfig{Frames: benchFrames, Dt: 1 / cfg.FrameRate})
}

func sweepWorld(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger.Info("sweeping", "param", sweepParam, "min", sweepMin, "max", sweepMax, "steps", sweepSteps)
	results, err := automation.RunSweep(cmd.Context(), cfg, automation.Sweep{
		Param:  sweepParam,
		Min:    sweepMin,
		Max:    sweepMax,
		Steps:  sweepSteps,
		Frames: sweepFrames,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tBODIES\tSTEPS\tFPS\tPEAK SPEED\tPEAK PRESSURE\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%d\t%d\t%.1f\t%.1f\t%.3f\n",
			r.Value, r.Final.Bodies, r.Final.SimSteps, r.Final.FPS, r.Final.PeakSpeed, r.Final.PeakPressure)
	}
	return w.Flush()
}

func newWorld[V vec.Vector[V]](cfg *config.Config) (*sim.World[V], error) {
	p, err := sim.ParamsFromConfig[V](cfg)
	if err != nil {
		return nil, err
	}
	return sim.NewWorld(p), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := viz.Options{FrameRate: cfg.FrameRate, Theme: theme}
	if cfg.Dimensions == 3 {
		return tui[vec.Vec3](cfg, opts)
	}
	return tui[vec.Vec2](cfg, opts)
}

func tui[V vec.Vector[V]](cfg *config.Config, opts viz.Options) error {
	w, err := newWorld[V](cfg)
	if err != nil {
		return err
	}
	return viz.Run(w, opts)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := gui.Options{TargetFPS: int32(cfg.TargetFPS), Logger: logger}
	if cfg.Dimensions == 3 {
		return window[vec.Vec3](cfg, opts)
	}
	return window[vec.Vec2](cfg, opts)
}

func window[V vec.Vector[V]](cfg *config.Config, opts gui.Options) error {
	w, err := newWorld[V](cfg)
	if err != nil {
		return err
	}
	gui.Run(w, opts)
	return nil
}

func serveWorld(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Dimensions == 3 {
		return serve[vec.Vec3](cmd, cfg)
	}
	return serve[vec.Vec2](cmd, cfg)
}

func serve[V vec.Vector[V]](cmd *cobra.Command, cfg *config.Config) error {
	w, err := newWorld[V](cfg)
	if err != nil {
		return err
	}
	return stream.NewServer(w, rate, logger).ListenAndServe(cmd.Context(), addr)
}
