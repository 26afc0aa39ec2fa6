package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/photosim/internal/analysis"
	"github.com/san-kum/photosim/internal/automation"
	"github.com/san-kum/photosim/internal/config"
	"github.com/san-kum/photosim/internal/export"
	"github.com/san-kum/photosim/internal/gui"
	"github.com/san-kum/photosim/internal/physics"
	"github.com/san-kum/photosim/internal/scene"
	"github.com/san-kum/photosim/internal/sim"
	"github.com/san-kum/photosim/internal/spectrum"
	"github.com/san-kum/photosim/internal/storage"
	"github.com/san-kum/photosim/internal/tui"
	"github.com/san-kum/photosim/internal/widget"
)

var (
	configFile string
	dataDir    string
	logLevel   string

	// light
	preset      string
	metal       string
	wavelength  float64
	intensity   float64
	stopVoltage float64
	ticks       int
	seed        int64
	numRuns     int

	// plot, analyze
	series  string
	svgPath string

	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	// calc, metals
	calcMetal    string
	workFunction float64
	copyResult   bool
	metalColor   string

	spectrumIntensity float64

	outPath string
	force   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "photosim",
		Short: "photoelectric effect simulator",
		RunE:  runWindow,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the simulator in the terminal",
		RunE:  runTUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save it",
		RunE:  runSimulation,
	}
	lightFlags(runCmd)
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "number of seeds to average")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "", "series to plot (default: collected, electrons, average_speed)")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the series as an svg polyline")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&series, "series", "emitted", "series to analyse")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run and its trace as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep wavelength or stop voltage and report photocurrent",
		RunE:  runSweep,
	}
	lightFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "stop_voltage", "wavelength or stop_voltage")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", -3, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 3, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 13, "number of values")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "closed-form photoelectric values",
		RunE:  calculate,
	}
	calcCmd.Flags().Float64Var(&wavelength, "wavelength", 475, "wavelength (nm)")
	calcCmd.Flags().StringVar(&calcMetal, "metal", "Sodium", "metal name")
	calcCmd.Flags().Float64Var(&workFunction, "work-function", 0, "work function in 1e-19 J (overrides --metal)")
	calcCmd.Flags().BoolVar(&copyResult, "copy", false, "copy the result to the clipboard")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [nm...]",
		Short: "show the colour of wavelengths",
		RunE:  showSpectrum,
	}
	spectrumCmd.Flags().Float64Var(&spectrumIntensity, "intensity", 100, "intensity (%)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the scene to a png or svg file",
		RunE:  snapshot,
	}
	lightFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "photosim.png", "output file (.png or .svg)")

	metalsCmd := &cobra.Command{
		Use:   "metals",
		Short: "manage metals",
	}
	metalsListCmd := &cobra.Command{
		Use:   "list",
		Short: "list built-in and saved metals",
		RunE:  listMetals,
	}
	metalsAddCmd := &cobra.Command{
		Use:   "add [name] [work_function]",
		Short: "save a custom metal (work function in 1e-19 J)",
		Args:  cobra.ExactArgs(2),
		RunE:  addMetal,
	}
	metalsAddCmd.Flags().StringVar(&metalColor, "color", "0,0,0", "r,g,b colour")
	metalsClearCmd := &cobra.Command{
		Use:   "clear",
		Short: "remove all saved metals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := storage.NewRecords(cfg.DataDir).ClearMetals(); err != nil {
				return err
			}
			fmt.Println("saved metals cleared")
			return nil
		},
	}
	metalsCmd.AddCommand(metalsListCmd, metalsAddCmd, metalsClearCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list light presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMETAL\tNM\tINTENSITY\tSTOP\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%.0f\t%.0f%%\t%.1fV\t%s\n",
					name, p.Light.Metal, p.Light.Wavelength, p.Light.Intensity, p.Light.StopVoltage, p.Description)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportCmd, sweepCmd, scenarioCmd,
		calcCmd, spectrumCmd, snapshotCmd, metalsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func lightFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "light preset")
	cmd.Flags().StringVar(&metal, "metal", "", "metal name")
	cmd.Flags().Float64Var(&wavelength, "wavelength", 475, "wavelength (nm)")
	cmd.Flags().Float64Var(&intensity, "intensity", 50, "intensity (%)")
	cmd.Flags().Float64Var(&stopVoltage, "stop", 0, "stop voltage (V)")
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks to simulate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "photosim",
	})
	if level, err := log.ParseLevel(logLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", logLevel)
	}
	return logger
}

// loadConfig reads --config (defaults otherwise) and applies the flags the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Lookup("preset") != nil && preset != "" {
		pr := config.GetPreset(preset)
		if pr == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		pr.Apply(cfg)
	}
	if flags.Lookup("ticks") != nil {
		if flags.Changed("metal") {
			cfg.Light.Metal = metal
		}
		if flags.Changed("wavelength") {
			cfg.Light.Wavelength = wavelength
		}
		if flags.Changed("intensity") {
			cfg.Light.Intensity = intensity
		}
		if flags.Changed("stop") {
			cfg.Light.StopVoltage = stopVoltage
		}
		if flags.Changed("ticks") {
			cfg.Run.Ticks = ticks
		}
		if flags.Changed("seed") {
			cfg.Seed = seed
		}
	}
	return cfg, cfg.Validate()
}

// customMetals reads saved metals, keeping what was read before a corrupt
// record.
func customMetals(records *storage.Records, logger *log.Logger) []physics.Metal {
	metals, err := records.LoadMetals()
	if err != nil {
		logger.Warn("reading saved metals", "err", err, "kept", len(metals))
	}
	return metals
}

func lightParams(l config.LightConfig) physics.Params {
	return physics.Params{Wavelength: l.Wavelength, Intensity: l.Intensity, StopVoltage: l.StopVoltage}
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	records := storage.NewRecords(cfg.DataDir)
	if err := records.Init(); err != nil {
		return err
	}

	win := gui.Open(cfg, logger)
	defer win.Close()

	s, err := scene.New(scene.Options{
		Config:    cfg,
		Records:   records,
		Font:      win.Font(cfg.Window.FontSize),
		SmallFont: win.Font(cfg.Window.SmallFont),
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = scene.NewLoop(s).Run(ctx, win)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	records := storage.NewRecords(cfg.DataDir)
	if err := records.Init(); err != nil {
		return err
	}

	// The terminal owns stdout and stderr while the program runs.
	logPath := filepath.Join(cfg.DataDir, "tui.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "photosim"})
	if level, err := log.ParseLevel(logLevel); err == nil {
		logger.SetLevel(level)
	}

	s, err := scene.New(scene.Options{Config: cfg, Records: records, Logger: logger})
	if err != nil {
		return err
	}
	return tui.Run(s)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	records := storage.NewRecords(cfg.DataDir)
	st := storage.NewRunStore(filepath.Join(cfg.DataDir, "runs"))
	if err := st.Init(); err != nil {
		return err
	}

	factory := sim.Factory(cfg.Factory(cfg.Light.Metal, customMetals(records, logger)))
	simCfg := sim.Config{Ticks: cfg.Run.Ticks, Params: lightParams(cfg.Light), Seed: cfg.Seed}

	fmt.Printf("running %s at %.0fnm...\n", cfg.Light.Metal, cfg.Light.Wavelength)
	start := time.Now()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var result *sim.Result
	if numRuns > 1 {
		results, err := sim.NewEnsemble(sim.New(factory), numRuns, cfg.Seed).Run(ctx, simCfg)
		if err != nil {
			return err
		}
		fmt.Printf("ensemble of %d seeds:\n", numRuns)
		for _, name := range sortedKeys(results[0].Metrics) {
			fmt.Printf("  %s: %.6g (mean)\n", name, sim.Mean(results, name))
		}
		fmt.Println()
		result = results[0]
	} else {
		result, err = sim.New(factory).Run(ctx, simCfg)
		if err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	session, err := factory(cfg.Seed)
	if err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Metal:        result.Metal,
		WorkFunction: session.Current().WorkFunction,
		Wavelength:   cfg.Light.Wavelength,
		Intensity:    cfg.Light.Intensity,
		StopVoltage:  cfg.Light.StopVoltage,
		Seed:         result.Seed,
		TickRate:     cfg.TickRate,
		Metrics:      result.Metrics,
	}, result.Trace)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", len(result.Trace))
	t := result.Totals
	fmt.Printf("photons: %d emitted, %d absorbed\n", t.Emitted, t.Absorbed)
	fmt.Printf("electrons: %d liberated, %d collected, %d escaped\n", t.Liberated, t.Collected, t.Escaped)
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}

	if speeds := analysis.Series(result.Trace, "average_speed"); len(speeds) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(speeds,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption("average speed (m/s)"),
		))
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.NewRunStore(filepath.Join(cfg.DataDir, "runs"))
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMETAL\tTIME\tNM\tINTENSITY\tSTOP\tTICKS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%.0f%%\t%.1fV\t%d\n",
			run.ID,
			run.Metal,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Wavelength,
			run.Intensity,
			run.StopVoltage,
			run.Ticks,
		)
	}
	return w.Flush()
}

func loadRun(cmd *cobra.Command, runID string) (*storage.RunMetadata, []physics.StepReport, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	st := storage.NewRunStore(filepath.Join(cfg.DataDir, "runs"))
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(trace) == 0 {
		return nil, nil, fmt.Errorf("no data in run %s", runID)
	}
	return meta, trace, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, trace, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	names := []string{"collected", "electrons", "average_speed"}
	if series != "" {
		names = strings.Split(series, ",")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("metal: %s at %.0fnm\n", meta.Metal, meta.Wavelength)
	fmt.Printf("samples: %d\n\n", len(trace))

	for _, name := range names {
		data, err := analysis.LookupSeries(trace, strings.TrimSpace(name))
		if err != nil {
			return err
		}
		st := analysis.Summarize(data)
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s (mean %.3g, max %.3g)", name, st.Mean, st.Max)),
		)
		fmt.Println(graph)
		fmt.Println()

		if svgPath != "" {
			path := svgPath
			if len(names) > 1 {
				ext := filepath.Ext(svgPath)
				path = strings.TrimSuffix(svgPath, ext) + "_" + name + ext
			}
			if err := os.WriteFile(path, []byte(export.SeriesToSVG(data, 800, 200, "#1f77b4")), 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
		}
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, trace, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	data, err := analysis.LookupSeries(trace, series)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("series: %s\n\n", series)

	ps := analysis.PowerSpectrum(data)
	if len(ps) > 4 {
		plotData := ps[1:]
		fmt.Println(asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum ("+series+")"),
		))
		fmt.Println()
	}

	tickRate := meta.TickRate
	if tickRate <= 0 {
		tickRate = config.DefaultTickRate
	}
	p := analysis.DominantPeriod(data, tickRate)
	if p.Bin == 0 {
		fmt.Println("no dominant frequency")
		return nil
	}
	fmt.Printf("dominant frequency: %.3f hz\n", p.Hz)
	fmt.Printf("period: %.2f ticks (%.3f s)\n", p.Ticks, p.Ticks/tickRate)
	if series == "emitted" && meta.Intensity > 0 {
		fmt.Printf("expected emission period: %d ticks\n", physics.Period(meta.Intensity)+1)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, trace, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, trace)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	factory := sim.Factory(cfg.Factory(cfg.Light.Metal, customMetals(storage.NewRecords(cfg.DataDir), logger)))
	base := sim.Config{Ticks: cfg.Run.Ticks, Params: lightParams(cfg.Light), Seed: cfg.Seed}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var points []analysis.SweepPoint
	switch sweepParam {
	case "wavelength":
		points, err = analysis.SweepWavelength(ctx, factory, base, sweepMin, sweepMax, sweepSteps)
	case "stop_voltage":
		points, err = analysis.SweepStopVoltage(ctx, factory, base, sweepMin, sweepMax, sweepSteps)
	default:
		return fmt.Errorf("unknown sweep parameter %q (wavelength or stop_voltage)", sweepParam)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tABSORBED\tLIBERATED\tCURRENT (e/s)\tMEAN SPEED\n", strings.ToUpper(sweepParam))
	current := make([]float64, len(points))
	for i, p := range points {
		current[i] = p.Photocurrent
		fmt.Fprintf(w, "%.3g\t%d\t%d\t%.2f\t%.0f\n", p.Param, p.Absorbed, p.Liberated, p.Photocurrent, p.MeanSpeed)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(current) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(current,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("photocurrent vs "+sweepParam),
		))
	}
	if v, ok := analysis.CutOff(points); ok {
		fmt.Printf("\nno electrons liberated from %s = %.3g\n", sweepParam, v)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.NewRunStore(filepath.Join(cfg.DataDir, "runs"))
	if err := st.Init(); err != nil {
		return err
	}

	r := &automation.Runner{
		Config: cfg,
		Custom: customMetals(storage.NewRecords(cfg.DataDir), logger),
		Store:  st,
		Logger: logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results, err := r.RunScenario(ctx, scenario)

	fmt.Printf("scenario: %s\n", scenario.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMETAL\tNM\tINTENSITY\tSTOP\tRESULT")
	for i, res := range results {
		var outcome string
		switch {
		case res.Run != nil:
			outcome = fmt.Sprintf("%d collected, %.3g e/s", res.Run.Totals.Collected, res.Run.Metrics["photocurrent"])
			if res.RunID != "" {
				outcome += " -> " + res.RunID
			}
		case res.HasCut:
			outcome = fmt.Sprintf("%d points, cut-off %.3g", len(res.Sweep), res.CutOff)
		default:
			outcome = fmt.Sprintf("%d points, no cut-off", len(res.Sweep))
		}
		fmt.Fprintf(w, "%d\t%s\t%.0f\t%.0f%%\t%.1fV\t%s\n", i+1,
			res.Light.Metal, res.Light.Wavelength, res.Light.Intensity, res.Light.StopVoltage, outcome)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func calculate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	w := workFunction * physics.WorkFunctionUnit
	name := fmt.Sprintf("W = %.3g J", w)
	if workFunction <= 0 {
		m, err := findMetal(cfg, calcMetal)
		if err != nil {
			return err
		}
		w, name = m.WorkFunction, m.Name
	}

	c := physics.Calculate(wavelength, w)
	var b strings.Builder
	fmt.Fprintf(&b, "%s under %.0fnm (%s)\n", name, c.Wavelength, spectrum.Name(c.Wavelength))
	fmt.Fprintf(&b, "photon energy:       %.4g J (%.3f eV)\n", c.PhotonEnergy, physics.JoulesToEV(c.PhotonEnergy))
	fmt.Fprintf(&b, "frequency:           %.4g Hz\n", c.Frequency)
	fmt.Fprintf(&b, "work function:       %.4g J (%.3f eV)\n", c.WorkFunction, physics.JoulesToEV(c.WorkFunction))
	fmt.Fprintf(&b, "threshold:           %.1f nm, %.4g Hz\n", c.ThresholdWavelength, c.ThresholdFrequency)
	if c.Emits {
		fmt.Fprintf(&b, "max kinetic energy:  %.4g J (%.3f eV)\n", c.MaxKineticEnergy, physics.JoulesToEV(c.MaxKineticEnergy))
		fmt.Fprintf(&b, "stopping potential:  %.3f V\n", c.StoppingPotential)
		fmt.Fprintf(&b, "max speed:           %.0f m/s\n", c.MaxSpeed)
	} else {
		fmt.Fprintln(&b, "no emission: photon energy below the work function")
	}

	fmt.Print(b.String())
	if copyResult {
		if err := clipboard.WriteAll(b.String()); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Println("copied to clipboard")
	}
	return nil
}

func findMetal(cfg *config.Config, name string) (physics.Metal, error) {
	builtin, err := cfg.Metals()
	if err != nil {
		return physics.Metal{}, err
	}
	reg, err := physics.NewMetals(builtin...)
	if err != nil {
		return physics.Metal{}, err
	}
	for _, m := range customMetals(storage.NewRecords(cfg.DataDir), log.New(os.Stderr)) {
		// Saved metals shadowing a built-in are skipped.
		_ = reg.Add(m)
	}
	return reg.Find(name)
}

func showSpectrum(cmd *cobra.Command, args []string) error {
	var nms []float64
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("wavelength %q: %w", a, err)
		}
		nms = append(nms, v)
	}
	if len(nms) == 0 {
		for nm := 100.0; nm <= 850; nm += 25 {
			nms = append(nms, nm)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NM\tBAND\tRGBA\tSWATCH")
	for _, nm := range nms {
		c := spectrum.Light(nm, spectrumIntensity)
		fmt.Fprintf(w, "%.0f\t%s\t%d,%d,%d,%d\t%s\n", nm, spectrum.Name(nm), c.R, c.G, c.B, c.A, swatch(c))
	}
	return w.Flush()
}

// swatch blends c over white, as the lamp light is drawn.
func swatch(c color.RGBA) string {
	a := float64(c.A) / 255
	mix := func(v uint8) int { return int(math.Round(float64(v)*a + 255*(1-a))) }
	hex := fmt.Sprintf("#%02x%02x%02x", mix(c.R), mix(c.G), mix(c.B))
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("      ")
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	fonts, err := export.NewFonts()
	if err != nil {
		return err
	}
	// No records: a snapshot never writes to the data directory.
	s, err := scene.New(scene.Options{
		Config:    cfg,
		Font:      fonts.Font(float64(cfg.Window.FontSize)),
		SmallFont: fonts.Font(float64(cfg.Window.SmallFont)),
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	for i := 0; i < cfg.Run.Ticks; i++ {
		if _, err := s.Step(widget.Input{}); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".svg":
		svg := export.NewSVG(cfg.Window.Width, cfg.Window.Height)
		s.Draw(svg)
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := svg.WriteTo(f); err != nil {
			return err
		}
	case ".png":
		png := export.NewPNG(cfg.Window.Width, cfg.Window.Height, fonts)
		s.Draw(png)
		if err := png.Save(outPath); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported snapshot format %q (png or svg)", filepath.Ext(outPath))
	}

	fmt.Printf("wrote %s after %d ticks\n", outPath, cfg.Run.Ticks)
	for _, line := range s.Readout().Lines() {
		fmt.Printf("  %s\n", line)
	}
	return nil
}

func listMetals(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	builtin, err := cfg.Metals()
	if err != nil {
		return err
	}
	saved := customMetals(storage.NewRecords(cfg.DataDir), newLogger())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tWORK FUNCTION\tEV\tTHRESHOLD\tCOLOUR\tSOURCE")
	for _, group := range []struct {
		source string
		metals []physics.Metal
	}{{"built-in", builtin}, {"saved", saved}} {
		for _, m := range group.metals {
			fmt.Fprintf(w, "%s\t%.3g J\t%.2f\t%.0f nm\t%d,%d,%d\t%s\n",
				m.Name, m.WorkFunction, physics.JoulesToEV(m.WorkFunction),
				physics.ThresholdWavelength(m.WorkFunction), m.Color.R, m.Color.G, m.Color.B, group.source)
		}
	}
	return w.Flush()
}

func addMetal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	wf, err := physics.ParseWorkFunction(args[1])
	if err != nil {
		return err
	}
	col, err := parseColor(metalColor)
	if err != nil {
		return err
	}
	m := physics.Metal{Name: strings.TrimSpace(args[0]), WorkFunction: wf, Color: col, Custom: true}

	if _, err := findMetal(cfg, m.Name); err == nil {
		return fmt.Errorf("%w: %s", physics.ErrDuplicateMetal, m.Name)
	}

	records := storage.NewRecords(cfg.DataDir)
	if err := records.Init(); err != nil {
		return err
	}
	if err := records.AppendMetal(m); err != nil {
		return err
	}
	fmt.Printf("saved %s (%.3g J, threshold %.0f nm)\n", m.Name, m.WorkFunction, physics.ThresholdWavelength(m.WorkFunction))
	return nil
}

func parseColor(text string) (color.RGBA, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("colour %q: want r,g,b", text)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("%w: %q", widget.ErrColorChannel, p)
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{ch[0], ch[1], ch[2], 255}, nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := config.DefaultFile
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
