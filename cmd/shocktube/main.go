package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/md3387/NonIdealReactor/internal/config"
	"github.com/md3387/NonIdealReactor/internal/export"
	"github.com/md3387/NonIdealReactor/internal/kinetics"
	"github.com/md3387/NonIdealReactor/internal/pipeline"
	"github.com/md3387/NonIdealReactor/internal/reactor"
	"github.com/md3387/NonIdealReactor/internal/report"
	"github.com/md3387/NonIdealReactor/internal/store"
	"github.com/md3387/NonIdealReactor/internal/tui"
	"github.com/md3387/NonIdealReactor/internal/viz"
)

var (
	dataDir     string
	mechanism   string
	temperature float64
	pressure    float64
	composition string
	fuel        string
	extra       string
	filebase    string
	duration    float64
	dt          float64
	configFile  string
	preset      string
	verbose     bool
	// export-svg options
	column    int
	svgWidth  int
	svgHeight int
	svgColor  string
	svgOut    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shocktube",
		Short: "zero-dimensional shock-tube reactor simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the guided form when no command given
			return runInteractive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".shocktube", "data directory for the run index")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a reactor simulation and write the report",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	interactiveCmd := &cobra.Command{
		Use:   "interactive",
		Short: "collect run parameters with a guided form",
		RunE:  runInteractive,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with a live terminal view",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run's report in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	speciesCmd := &cobra.Command{
		Use:   "species [mechanism]",
		Short: "list the species a mechanism file defines",
		Args:  cobra.ExactArgs(1),
		RunE:  listSpecies,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in run presets",
		RunE:  listPresets,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a recorded run and its report to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render one report column as an SVG polyline",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&column, "column", 1, "report column to plot (0 is time)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")
	exportSVGCmd.Flags().StringVar(&svgColor, "color", "#4ecdc4", "stroke color")
	exportSVGCmd.Flags().StringVar(&svgOut, "o", "", "output file (default stdout)")

	rootCmd.AddCommand(runCmd, interactiveCmd, liveCmd, listCmd, plotCmd,
		speciesCmd, presetsCmd, exportJSONCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&mechanism, "mechanism", "", "mechanism file (yaml)")
	cmd.Flags().Float64Var(&temperature, "temp", config.DefaultTemperature, "initial temperature [K]")
	cmd.Flags().Float64Var(&pressure, "pressure", config.DefaultPressure, "initial pressure [atm]")
	cmd.Flags().StringVar(&composition, "composition", "", "gas composition, e.g. \"CH4:1, O2:2, N2:7.52\"")
	cmd.Flags().StringVar(&fuel, "fuel", "", "fuel species name")
	cmd.Flags().StringVar(&extra, "extra", "", "user-defined catalog species")
	cmd.Flags().StringVar(&filebase, "filebase", "", "output file base")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated time [s]")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultStep, "sampling timestep [s]")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset conditions")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveConfig merges preset, config file and flags, in that order of
// increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("mechanism") || cfg.Mechanism == "" {
		cfg.Mechanism = mechanism
	}
	if flags.Changed("temp") {
		cfg.Temperature = temperature
	}
	if flags.Changed("pressure") {
		cfg.Pressure = pressure
	}
	if flags.Changed("composition") || cfg.Composition == "" {
		cfg.Composition = composition
	}
	if flags.Changed("fuel") || cfg.Fuel == "" {
		cfg.Fuel = fuel
	}
	if flags.Changed("extra") {
		cfg.Extra = extra
	}
	if flags.Changed("filebase") || cfg.Filebase == "" {
		cfg.Filebase = filebase
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("dt") {
		cfg.Step = dt
	}
	cfg.DataDir = dataDir

	return cfg, cfg.Validate()
}

func openStore() (*store.Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return store.Open(filepath.Join(dataDir, "runs.db"))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return execute(cfg, nil)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	defaults := config.DefaultConfig()
	if preset != "" {
		if p := config.GetPreset(preset); p != nil {
			defaults = p
		}
	}

	cfg, err := tui.Collect(defaults)
	if err != nil {
		return err
	}
	cfg.DataDir = dataDir

	// One correction round trip through the form, then the run is fatal.
	correct := func(unknown *kinetics.UnknownSpeciesError) (string, error) {
		return tui.CorrectComposition(unknown, cfg.Composition)
	}
	return execute(cfg, correct)
}

// execute runs the pipeline and records the completed run. correct, when
// non-nil, supplies the single composition-correction round trip.
func execute(cfg *config.Config, correct pipeline.CorrectionFunc) error {
	log := newLogger()

	opts := []pipeline.Option{pipeline.WithLogger(log)}
	if correct != nil {
		opts = append(opts, pipeline.WithCorrection(correct))
	}
	p := pipeline.New(reactor.NewEngine(), opts...)

	fmt.Printf("running %s at %g K, %g atm...\n", cfg.Fuel, cfg.Temperature, cfg.Pressure)
	start := time.Now()

	res, err := p.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.Record(context.Background(), cfg, res.Series.Len(), res.OutputPath)
	if err != nil {
		return err
	}

	last := res.Series.Rows()[res.Series.Len()-1]
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", run.ID)
	fmt.Printf("steps: %d\n", res.Series.Len())
	fmt.Printf("final temperature: %.1f K\n", last.Temperature)
	fmt.Printf("report: %s\n", res.OutputPath)

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	eng := reactor.NewEngine()
	p := pipeline.New(eng, pipeline.WithLogger(newLogger()))

	sol, err := p.Configure(cfg)
	if err != nil {
		return err
	}
	net, err := eng.NewReactorNetwork(sol)
	if err != nil {
		return err
	}

	prog := tea.NewProgram(viz.NewModel(net, cfg))
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tFUEL\tTEMP\tPRESSURE\tSTEPS\tOUTPUT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fK\t%.2fatm\t%d\t%s\n",
			run.ID,
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			run.Fuel,
			run.Temperature,
			run.Pressure,
			run.Steps,
			run.Output,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	header, rows, err := report.Read(run.Output)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", run.ID)
	fmt.Printf("fuel: %s  T=%.0fK  P=%.2fatm\n", run.Fuel, run.Temperature, run.Pressure)
	fmt.Printf("samples: %d\n\n", len(rows))

	// Column 0 is time; plot the species columns that actually moved.
	for col := 1; col < len(header); col++ {
		data := make([]float64, len(rows))
		moved := false
		for i := range rows {
			data[i] = rows[i][col]
			if data[i] != data[0] {
				moved = true
			}
		}
		if !moved {
			continue
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(header[col]),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func listSpecies(cmd *cobra.Command, args []string) error {
	sol, err := reactor.NewEngine().NewSolution(args[0])
	if err != nil {
		return err
	}
	for _, name := range sol.SpeciesNames() {
		fmt.Println(name)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFUEL\tTEMP\tPRESSURE\tCOMPOSITION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%.0fK\t%.2fatm\t%s\n",
			name, p.Fuel, p.Temperature, p.Pressure, p.Composition)
	}
	return w.Flush()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	header, rows, err := report.Read(run.Output)
	if err != nil {
		return err
	}
	return export.JSONStdout(run, header, rows)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	header, rows, err := report.Read(run.Output)
	if err != nil {
		return err
	}
	if column < 1 || column >= len(header) {
		return fmt.Errorf("column %d out of range (1..%d)", column, len(header)-1)
	}

	times := make([]float64, len(rows))
	values := make([]float64, len(rows))
	for i := range rows {
		times[i] = rows[i][0]
		values[i] = rows[i][column]
	}

	svg := export.SeriesSVG(times, values, svgWidth, svgHeight, svgColor)
	if svg == "" {
		return fmt.Errorf("not enough data to plot")
	}

	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s)\n", svgOut, header[column])
	return nil
}
