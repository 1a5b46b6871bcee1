package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/analysis"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/config"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/export"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/integrators"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/metrics"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/params"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/san"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/storage"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/sweep"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	integrator string
	adaptive   bool
	tolerance  float64
	ach        float64
	nor        float64
	paramFile  string
	configFile string
	preset     string
	stateIdx   int
	svgOut     string
	achGrid    string
	norGrid    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sansim",
		Short: "human sinoatrial node cell simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sansim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and save the trace",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "print the model's constants and initial state",
		RunE:  showInfo,
	}
	infoCmd.Flags().Float64Var(&ach, "ach", 0, "acetylcholine concentration (mM)")
	infoCmd.Flags().Float64Var(&nor, "nor", 0, "noradrenaline concentration (mM)")
	infoCmd.Flags().StringVar(&paramFile, "params", "", "parameter file (json)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&stateIdx, "state", 0, "state index to plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectral rate estimate of a saved trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a saved trace as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&stateIdx, "state", 0, "state index to draw")
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "trace.svg", "output file")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "dose-response grid over acetylcholine and noradrenaline",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&achGrid, "ach", "0", "comma-separated acetylcholine doses (mM)")
	sweepCmd.Flags().StringVar(&norGrid, "nor", "0", "comma-separated noradrenaline doses (mM)")
	sweepCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	sweepCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	sweepCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	sweepCmd.Flags().StringVar(&paramFile, "params", "", "parameter file (json)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, infoCmd, listCmd, plotCmd, analyzeCmd,
		exportCmd, exportSVGCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (euler, rk4, rk45)")
	cmd.Flags().BoolVar(&adaptive, "adaptive", false, "adaptive timestep")
	cmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "adaptive error tolerance")
	cmd.Flags().Float64Var(&ach, "ach", 0, "acetylcholine concentration (mM)")
	cmd.Flags().Float64Var(&nor, "nor", 0, "noradrenaline concentration (mM)")
	cmd.Flags().StringVar(&paramFile, "params", "", "parameter file (json)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset")
}

// resolveConfig merges preset, config file and flags, flags winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("adaptive") {
		cfg.Adaptive = adaptive
	}
	if cmd.Flags().Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if cmd.Flags().Changed("ach") {
		cfg.Acetylcholine = ach
	}
	if cmd.Flags().Changed("nor") {
		cfg.Noradrenaline = nor
	}
	if cmd.Flags().Changed("params") {
		cfg.ParamFile = paramFile
	}

	return cfg, cfg.Validate()
}

func loadParams(path string) (*san.ParameterSet, error) {
	if path == "" {
		return params.Default()
	}
	return params.Load(path)
}

func buildCell(cfg *config.Config) (*san.Cell, error) {
	ps, err := loadParams(cfg.ParamFile)
	if err != nil {
		return nil, err
	}
	for name, value := range cfg.Overrides {
		if err := ps.Set(name, value); err != nil {
			return nil, err
		}
	}
	return san.NewCell(ps, cfg.Acetylcholine, cfg.Noradrenaline)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	cell, err := buildCell(cfg)
	if err != nil {
		return err
	}
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sim := dynamo.New(cell, integ)
	sim.AddMetric(metrics.NewBeatingRate())
	sim.AddMetric(metrics.NewCycleLength())
	sim.AddMetric(metrics.NewAmplitude())
	sim.AddMetric(metrics.NewMaxDiastolicPotential())
	sim.AddMetric(metrics.NewUpstrokeVelocity())
	sim.AddMetric(metrics.NewDiastolicCa())
	sim.AddMetric(metrics.NewSRLoad())

	fmt.Println("running simulation...")
	start := time.Now()

	result, err := sim.Run(context.Background(), cell.InitialState(), cfg.RunConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		Integrator:    cfg.Integrator,
		Acetylcholine: cfg.Acetylcholine,
		Noradrenaline: cfg.Noradrenaline,
	}
	runID, err := st.Save(meta, cell.StateNames(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cell, err := buildCell(cfg)
	if err != nil {
		return err
	}
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}
	return viz.Run(cell, integ, cfg.Dt)
}

func showInfo(cmd *cobra.Command, args []string) error {
	ps, err := loadParams(paramFile)
	if err != nil {
		return err
	}
	cell, err := san.NewCell(ps, ach, nor)
	if err != nil {
		return err
	}
	return cell.WriteInfo(os.Stdout)
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
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tINTEG\tACH\tNOR")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.2es\t%s\t%g\t%g\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Acetylcholine,
			run.Noradrenaline,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if stateIdx < 0 || stateIdx >= len(states[0]) {
		return fmt.Errorf("state index %d out of range (run has %d states)", stateIdx, len(states[0]))
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(states))

	// Downsample so the plot stays readable for long runs.
	stride := len(states)/2000 + 1
	data := make([]float64, 0, len(states)/stride+1)
	for i := 0; i < len(states); i += stride {
		data = append(data, states[i][stateIdx])
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("state %d vs time", stateIdx)),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) < 2 {
		return fmt.Errorf("no data")
	}

	voltage := make([]float64, len(states))
	for i := range states {
		voltage[i] = states[i][0]
	}
	sampleDt := times[1] - times[0]

	fmt.Printf("spectral analysis: %s\n", meta.ID)
	fmt.Printf("dominant frequency: %.3f Hz\n", analysis.DominantFrequency(voltage, 1.0/sampleDt))
	fmt.Printf("estimated rate: %.1f bpm\n", analysis.RateFromTrace(voltage, sampleDt))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) < 2 {
		return fmt.Errorf("no data to export")
	}
	if stateIdx < 0 || stateIdx >= len(states[0]) {
		return fmt.Errorf("state index %d out of range (run has %d states)", stateIdx, len(states[0]))
	}

	values := make([]float64, len(states))
	for i := range states {
		values[i] = states[i][stateIdx]
	}

	svg := export.TraceToSVG(times, values, 900, 400, "#00ff00")
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func parseDoses(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	doses := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad dose %q: %w", p, err)
		}
		doses = append(doses, v)
	}
	return doses, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	achDoses, err := parseDoses(achGrid)
	if err != nil {
		return err
	}
	norDoses, err := parseDoses(norGrid)
	if err != nil {
		return err
	}

	ps, err := loadParams(paramFile)
	if err != nil {
		return err
	}

	grid := &sweep.Grid{
		Params:        ps,
		Acetylcholine: achDoses,
		Noradrenaline: norDoses,
		Integrator:    integrator,
	}

	run := dynamo.DefaultConfig()
	run.Dt = dt
	run.Duration = duration

	fmt.Printf("sweeping %d points...\n", len(achDoses)*len(norDoses))
	points, err := grid.Run(context.Background(), run)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACH\tNOR\tRATE(BPM)\tCYCLE(S)\tAMPL(MV)\tMDP(MV)")
	for _, p := range points {
		fmt.Fprintf(w, "%g\t%g\t%.1f\t%.4f\t%.1f\t%.1f\n",
			p.Acetylcholine, p.Noradrenaline,
			p.Metrics["beating_rate_bpm"],
			p.Metrics["cycle_length_s"],
			p.Metrics["ap_amplitude_mv"],
			p.Metrics["mdp_mv"],
		)
	}
	return w.Flush()
}
