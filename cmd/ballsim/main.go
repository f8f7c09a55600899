package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/san-kum/ballsim/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir       string
	logLevel      string
	configFile    string
	preset        string
	bodies        int
	dims          int
	seed          int64
	simSteps      int
	autoSteps     bool
	runFrames     int
	benchFrames   int
	sweepFrames   int
	scriptFile    string
	runName       string
	svgFile       string
	svgScale      float64
	measure       bool
	noSave        bool
	series        []string
	analyzeSeries string
	benchRuns     int
	sweepParam    string
	sweepMin      float64
	sweepMax      float64
	sweepSteps    int
	theme         string
	addr          string
	rate          float64

	logger *log.Logger
)

// main registers the commands and exits with status 1 when the chosen
// command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "ballsim",
		Short:         "ball collision simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			logger = log.NewWithOptions(os.Stderr, log.Options{
				Level:           level,
				Prefix:          "ballsim",
				ReportTimestamp: true,
			})
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ballsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store its telemetry",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addWorldFlags(runCmd)
	runCmd.Flags().IntVar(&runFrames, "frames", 600, "number of frames")
	runCmd.Flags().StringVar(&scriptFile, "script", "", "input script (yaml)")
	runCmd.Flags().StringVar(&runName, "name", "run", "run name")
	runCmd.Flags().StringVar(&svgFile, "export-svg", "", "write the last frame as svg")
	runCmd.Flags().Float64Var(&svgScale, "svg-scale", 1, "svg scale")
	runCmd.Flags().BoolVar(&measure, "measure", false, "drive step control by wall-clock frame rate")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store telemetry")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot telemetry of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&series, "series", []string{"fps", "sim_steps"}, "columns to plot")
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the first series as svg")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a telemetry series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&analyzeSeries, "series", "sim_steps", "column to analyze")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frames per second over body counts and step counts",
		Args:  cobra.NoArgs,
		RunE:  benchWorld,
	}
	addWorldFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchFrames, "frames", 120, "frames per run")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 4, "parallel worlds per row")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one config parameter over headless runs",
		Args:  cobra.NoArgs,
		RunE:  sweepWorld,
	}
	addWorldFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepFrames, "frames", 300, "frames per run")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "body_count", "config field to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 250, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1000, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 4, "number of values")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal view",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	addWorldFlags(tuiCmd)
	tuiCmd.Flags().StringVar(&theme, "theme", "night", "color theme")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "interactive window (2-D circles or 3-D spheres)",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addWorldFlags(guiCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream frames to websocket clients",
		Args:  cobra.NoArgs,
		RunE:  serveWorld,
	}
	addWorldFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().Float64Var(&rate, "rate", 60, "frames per second")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportCmd, presetsCmd, benchCmd, sweepCmd, tuiCmd, guiCmd, serveCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if logger == nil {
			logger = log.Default()
		}
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func addWorldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&bodies, "bodies", config.DefaultBodyCount, "number of bodies")
	cmd.Flags().IntVar(&dims, "dims", 2, "dimensions (2 or 3)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().IntVar(&simSteps, "sim-steps", config.DefaultSimSteps, "initial sim steps per frame")
	cmd.Flags().BoolVar(&autoSteps, "auto-steps", true, "adapt sim steps to the frame rate")
}

// loadConfig resolves preset, config file and changed flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("bodies") {
		cfg.BodyCount = bodies
	}
	if flags.Changed("dims") {
		cfg.Dimensions = dims
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("sim-steps") {
		cfg.SimSteps = simSteps
	}
	if flags.Changed("auto-steps") {
		cfg.AutoSimSteps = autoSteps
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("config", "dims", cfg.Dimensions, "bodies", cfg.BodyCount, "steps", cfg.SimSteps, "auto", cfg.AutoSimSteps)
	return cfg, nil
}
