package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/crnsim/internal/config"
	"github.com/san-kum/crnsim/internal/crn"
	"github.com/san-kum/crnsim/internal/det"
	"github.com/san-kum/crnsim/internal/export"
	"github.com/san-kum/crnsim/internal/logging"
	"github.com/san-kum/crnsim/internal/presets"
	"github.com/san-kum/crnsim/internal/sto"
	"github.com/san-kum/crnsim/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	engine     string
	dt         float64
	duration   float64
	steps      int
	seed       int64
	points     int
	netFile    string
	configFile string
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff"))
	nameStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
)

var logger *slog.Logger

func main() {
	rootCmd := &cobra.Command{
		Use:   "crnsim",
		Short: "chemical reaction network simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(logLevel, os.Stderr)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".crnsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation and save the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&engine, "engine", config.DefaultEngine, "engine (stochastic or deterministic)")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (deterministic)")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration")
	runCmd.Flags().IntVar(&steps, "steps", 0, "fixed number of firings instead of a duration (stochastic)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	runCmd.Flags().StringVarP(&netFile, "file", "f", "", "network description file")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset networks",
		RunE:  listPresets,
	}

	showCmd := &cobra.Command{
		Use:   "show [preset]",
		Short: "print a preset's canonical text",
		Args:  cobra.ExactArgs(1),
		RunE:  showPreset,
	}

	fmtCmd := &cobra.Command{
		Use:   "fmt",
		Short: "reprint a network description in canonical form",
		RunE:  formatNetwork,
	}
	fmtCmd.Flags().StringVarP(&netFile, "file", "f", "", "network description file (default stdin)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&points, "points", config.DefaultPoints, "max samples per chart")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "benchmark both engines on a network",
		Args:  cobra.ExactArgs(1),
		RunE:  benchNetwork,
	}

	rootCmd.AddCommand(runCmd, presetsCmd, showCmd, fmtCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// mergeConfig resolves the run configuration: defaults, then the config
// file, then any flag the user set explicitly.
func mergeConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("engine") {
		cfg.Engine = engine
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("file") {
		cfg.File = netFile
	}
	if len(args) > 0 {
		cfg.Network = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveNetwork returns the run's display name and network text from
// either the file or the preset named by the config.
func resolveNetwork(cfg *config.Config) (string, string, error) {
	if cfg.File != "" {
		data, err := os.ReadFile(cfg.File)
		if err != nil {
			return "", "", err
		}
		name := strings.TrimSuffix(filepath.Base(cfg.File), filepath.Ext(cfg.File))
		return name, string(data), nil
	}
	if cfg.Network == "" {
		return "", "", fmt.Errorf("no network given: name a preset or pass --file (presets: %s)",
			strings.Join(presets.Names(), ", "))
	}
	text, ok := presets.Get(cfg.Network)
	if !ok {
		return "", "", fmt.Errorf("unknown preset %q (available: %s)", cfg.Network, strings.Join(presets.Names(), ", "))
	}
	return cfg.Network, text, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := mergeConfig(cmd, args)
	if err != nil {
		return err
	}

	name, text, err := resolveNetwork(cfg)
	if err != nil {
		return err
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	logger.Debug("starting run", "network", name, "engine", cfg.Engine, "seed", cfg.Seed)
	start := time.Now()

	var result *crn.Result
	switch cfg.Engine {
	case "deterministic":
		net, err := crn.ParseDeterministic(text)
		if err != nil {
			return err
		}
		result = det.New(net).RunFor(cfg.Duration, cfg.Dt)
	default:
		net, err := crn.ParseStochastic(text)
		if err != nil {
			return err
		}
		sim := sto.New(net, cfg.Seed)
		if cfg.Steps > 0 {
			result, err = sim.RunSteps(cfg.Steps)
		} else {
			result, err = sim.RunFor(cfg.Duration)
		}
		if err != nil {
			// Partial history is still worth keeping; the run is suspect.
			logger.Warn("run ended abnormally", "err", err, "samples", result.Len())
		}
	}

	elapsed := time.Since(start)

	runID, err := st.Save(name, cfg.Engine, cfg.Dt, cfg.Duration, cfg.Seed, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", result.Len())

	if result.Len() > 0 {
		fmt.Println("\nfinal abundances:")
		last := result.Species[result.Len()-1]
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for i, sp := range result.Names {
			fmt.Fprintf(w, "  %s\t%g\n", sp, last[i])
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("preset networks"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range presets.Names() {
		desc, _ := presets.Describe(name)
		fmt.Fprintf(w, "  %s\t%s\n", nameStyle.Render(name), subtleStyle.Render(desc))
	}
	return w.Flush()
}

func showPreset(cmd *cobra.Command, args []string) error {
	text, ok := presets.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown preset %q (available: %s)", args[0], strings.Join(presets.Names(), ", "))
	}
	net, err := crn.ParseDeterministic(text)
	if err != nil {
		return err
	}
	fmt.Print(net.String())
	return nil
}

func formatNetwork(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if netFile != "" {
		data, err = os.ReadFile(netFile)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}

	net, err := crn.ParseDeterministic(string(data))
	if err != nil {
		return err
	}
	fmt.Print(net.String())
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

	fmt.Println(titleStyle.Render("saved runs"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNETWORK\tENGINE\tTIME\tDURATION\tDT\tSAMPLES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4f\t%d\n",
			run.ID,
			run.Network,
			run.Engine,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
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

	result, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if result.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("network: %s (%s)\n", meta.Network, meta.Engine)
	fmt.Printf("samples: %d\n\n", result.Len())

	for i, name := range result.Names {
		data := sample(result.Column(i), points)
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs time", name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

// sample thins a series to at most max points without reordering it.
func sample(data []float64, max int) []float64 {
	if max <= 0 || len(data) <= max {
		return data
	}
	stride := len(data) / max
	out := make([]float64, 0, max)
	for i := 0; i < len(data); i += stride {
		out = append(out, data[i])
	}
	return out
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return export.ExportCSV(os.Stdout, result)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return export.ExportJSON(os.Stdout, export.Meta{
		Network:  meta.Network,
		Engine:   meta.Engine,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Seed:     meta.Seed,
	}, result)
}

func benchNetwork(cmd *cobra.Command, args []string) error {
	text, ok := presets.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown preset %q (available: %s)", args[0], strings.Join(presets.Names(), ", "))
	}

	fmt.Printf("benchmarking %s\n\n", args[0])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENGINE\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.001, 0.01, 0.1}

	for _, dur := range durations {
		for _, stepSize := range dts {
			net, err := crn.ParseDeterministic(text)
			if err != nil {
				return err
			}
			sim := det.New(net)

			start := time.Now()
			result := sim.RunFor(dur, stepSize)
			elapsed := time.Since(start)

			fmt.Fprintf(w, "deterministic\t%.4f\t%d\t%v\t%.0f\n",
				stepSize, result.Len(), elapsed, float64(result.Len())/elapsed.Seconds())
		}
	}

	for _, n := range []int{1000, 10000, 100000} {
		net, err := crn.ParseStochastic(text)
		if err != nil {
			return err
		}
		sim := sto.New(net, 42)

		start := time.Now()
		result, err := sim.RunSteps(n)
		elapsed := time.Since(start)
		if err != nil {
			logger.Warn("stochastic bench ended abnormally", "err", err)
		}

		fmt.Fprintf(w, "stochastic\t-\t%d\t%v\t%.0f\n",
			n, elapsed, float64(result.Len())/elapsed.Seconds())
	}

	return w.Flush()
}
