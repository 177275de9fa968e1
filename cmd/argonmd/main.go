package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/argonmd/internal/analysis"
	"github.com/san-kum/argonmd/internal/compute"
	"github.com/san-kum/argonmd/internal/config"
	"github.com/san-kum/argonmd/internal/lattice"
	"github.com/san-kum/argonmd/internal/md"
	"github.com/san-kum/argonmd/internal/metrics"
	"github.com/san-kum/argonmd/internal/sim"
	"github.com/san-kum/argonmd/internal/storage"
	"github.com/san-kum/argonmd/internal/viz"
)

var (
	dataDir     string
	nc          int
	scale       float64
	temperature float64
	dt          float64
	steps       int
	seed        int64
	backendName string
	configFile  string
	preset      string
	validate    bool
	// live view
	frameRate    int
	stepsPerTick int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "argonmd",
		Short: "Lennard-Jones Argon molecular dynamics",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".argonmd", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&nc, "nc", config.DefaultNc, "supercells per axis")
	runCmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "lattice constant scale")
	runCmd.Flags().Float64Var(&temperature, "temp", config.DefaultTempK, "target temperature [K]")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "reduced time step")
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().StringVar(&backendName, "backend", config.DefaultBackend, "backend (auto|cpu|gpu)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&validate, "validate", false, "stop on NaN/Inf state")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run energies",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run energies to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "temperature frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal view",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&nc, "nc", config.DefaultNc, "supercells per axis")
	liveCmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "lattice constant scale")
	liveCmd.Flags().Float64Var(&temperature, "temp", config.DefaultTempK, "target temperature [K]")
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "reduced time step")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().StringVar(&backendName, "backend", config.DefaultBackend, "backend (auto|cpu|gpu)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&stepsPerTick, "steps-per-tick", 5, "simulation steps per frame")

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

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the CPU backend",
		RunE:  benchBackend,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, analyzeCmd, liveCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildConfig(cmd *cobra.Command) (*config.Config, error) {
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
		*cfg = *loaded
	}

	// CLI flags override preset and config file.
	if cmd.Flags().Changed("nc") {
		cfg.Nc = nc
	}
	if cmd.Flags().Changed("scale") {
		cfg.Scale = scale
	}
	if cmd.Flags().Changed("temp") {
		cfg.Temperature = temperature
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backend = backendName
	}
	if cmd.Flags().Changed("validate") {
		cfg.Validate = validate
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func selectBackend(name string) (compute.Backend, error) {
	switch name {
	case "auto":
		return compute.GetBackend(), nil
	case "cpu":
		cpu := compute.NewCPUBackend()
		compute.SetBackend(cpu)
		return cpu, nil
	case "gpu":
		gpu := compute.NewGLBackend()
		if !gpu.Available() {
			return nil, fmt.Errorf("gpu backend unavailable (no GL 4.3 context)")
		}
		compute.SetBackend(gpu)
		return gpu, nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", name)
	}
}

func setupRun(cfg *config.Config) (*md.State, *sim.Simulator, error) {
	backend, err := selectBackend(cfg.Backend)
	if err != nil {
		return nil, nil, err
	}

	state := cfg.NewState()
	lattice.InitPositions(state)
	lattice.InitVelocities(state, rand.New(rand.NewSource(cfg.Seed)))

	simulator := sim.New(backend)
	simulator.AddMetric(metrics.NewEnergyDrift())
	simulator.AddMetric(metrics.NewMeanTemperature())

	return state, simulator, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	state, simulator, err := setupRun(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %d atoms (nc=%d) for %d steps on %s...\n",
		state.NumAtom, cfg.Nc, cfg.Steps, simulator.Backend().Name())
	start := time.Now()

	result, err := simulator.Run(context.Background(), state,
		sim.Config{Steps: cfg.Steps, Validate: cfg.Validate})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}

	runID, err := st.Save(storage.RunMetadata{
		Nc:          cfg.Nc,
		NumAtom:     state.NumAtom,
		Dt:          cfg.Dt,
		Temperature: cfg.Temperature,
		Seed:        cfg.Seed,
		Backend:     simulator.Backend().Name(),
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	if len(result.Series) > 0 {
		last := result.Series[len(result.Series)-1]
		fmt.Printf("final: Up=%.6f Uk=%.6f Utot=%.6f Tc=%.6f\n",
			last.Up, last.Uk, last.Utot, last.Tc)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

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
	fmt.Fprintln(w, "ID\tTIME\tATOMS\tSTEPS\tDT\tTEMP\tBACKEND")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.4f\t%.1fK\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.NumAtom,
			run.Steps,
			run.Dt,
			run.Temperature,
			run.Backend,
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

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("atoms: %d  steps: %d\n\n", meta.NumAtom, meta.Steps)

	plots := []struct {
		caption string
		pick    func(d sim.Diagnostics) float64
	}{
		{"potential energy", func(d sim.Diagnostics) float64 { return d.Up }},
		{"kinetic energy", func(d sim.Diagnostics) float64 { return d.Uk }},
		{"total energy", func(d sim.Diagnostics) float64 { return d.Utot }},
		{"temperature", func(d sim.Diagnostics) float64 { return d.Tc }},
	}

	for _, p := range plots {
		data := make([]float64, len(series))
		for i, d := range series {
			data[i] = p.pick(d)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "up", "uk", "utot", "tc"}); err != nil {
		return err
	}

	for _, d := range series {
		row := []string{
			strconv.FormatFloat(d.Time, 'f', 6, 64),
			strconv.FormatFloat(d.Up, 'f', 8, 64),
			strconv.FormatFloat(d.Uk, 'f', 8, 64),
			strconv.FormatFloat(d.Utot, 'f', 8, 64),
			strconv.FormatFloat(d.Tc, 'f', 8, 64),
		}
		if err := w.Write(row); err != nil {
			return err
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

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("atoms: %d\n\n", meta.NumAtom)

	data := make([]float64, len(series))
	for i, d := range series {
		data[i] = d.Tc
	}

	stats := analysis.Describe(data)
	fmt.Printf("temperature: mean=%.6f std=%.6f min=%.6f max=%.6f\n\n",
		stats.Mean, stats.Std, stats.Min, stats.Max)

	// Remove the mean so the DC bin does not dominate the spectrum.
	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - stats.Mean
	}

	// PowerSpectrum already returns the half spectrum.
	padded := analysis.PadPow2(centered)
	ps := analysis.PowerSpectrum(padded)

	graph := asciigraph.Plot(ps,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("temperature power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	// One sample per step, so the sample spacing is the run's dt.
	if freq := analysis.DominantFrequency(ps, len(padded), meta.Dt); freq > 0 {
		fmt.Printf("dominant frequency: %.4f (reduced units)\n", freq)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	state, simulator, err := setupRun(cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(simulator, state, stepsPerTick, frameRate)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func benchBackend(cmd *cobra.Command, args []string) error {
	cpu := compute.NewCPUBackend()

	ncs := []int{1, 2, 3, 4}
	benchSteps := 20

	fmt.Println("benchmarking cpu backend")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NC\tATOMS\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range ncs {
		state := md.NewState(n, md.FirstScale, md.FirstTemp)
		lattice.InitPositions(state)
		lattice.InitVelocities(state, rand.New(rand.NewSource(42)))

		simulator := sim.New(cpu)

		start := time.Now()
		result, err := simulator.Run(context.Background(), state, sim.Config{Steps: benchSteps})
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.1f\n",
			n, state.NumAtom, result.StepsTaken, elapsed.Round(time.Millisecond), stepsPerSec)
	}

	return w.Flush()
}
