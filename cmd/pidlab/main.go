package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/pidlab/internal/config"
	"github.com/san-kum/pidlab/internal/control"
	"github.com/san-kum/pidlab/internal/experiment"
	"github.com/san-kum/pidlab/internal/export"
	"github.com/san-kum/pidlab/internal/metrics"
	"github.com/san-kum/pidlab/internal/optim"
	"github.com/san-kum/pidlab/internal/scenario"
	"github.com/san-kum/pidlab/internal/tui"
	"github.com/san-kum/pidlab/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configFile   string
	verbose      bool
	workers      int
	theme        string
	preset       string
	scenarioName string
	initial      float64
	duration     float64
	kp           float64
	ki           float64
	kd           float64
	// Output
	noPlot       bool
	width        int
	exportFormat string
	exportOut    string
	chartFormat  string
	chartOut     string
	metricName   string
)

// main runs the pidlab CLI and exits with status 1 if the command fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// newRootCmd registers the pidlab commands. The root command runs the
// interactive tuner when no subcommand is given.
func newRootCmd() *cobra.Command {
	registry := experiment.NewRegistry()

	rootCmd := &cobra.Command{
		Use:           "pidlab",
		Short:         "pid vs bang-bang control lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "max concurrent simulations (0 = unbounded)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	addSimFlags(rootCmd)

	controllers := registry.ListControllers()
	runCmd := &cobra.Command{
		Use:       "run [" + strings.Join(controllers, "|") + "]",
		Short:     "simulate one controller on a scenario",
		Long:      "Simulate one controller on a scenario. Controllers: " + strings.Join(controllers, ", ") + " (default pid).",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: controllers,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, registry, args)
		},
	}
	addSimFlags(runCmd)
	addPlotFlags(runCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "score pid gains against the bang-bang baseline",
		Args:  cobra.NoArgs,
		RunE:  runCompare,
	}
	addSimFlags(compareCmd)
	addPlotFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [P|I|D]",
		Short: "overlay runs that vary one gain",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	addPlotFlags(sweepCmd)

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search gains minimizing a metric",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	addSimFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&metricName, "metric", "", "metric to minimize ("+strings.Join(metrics.Names(), ", ")+")")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export pid and baseline trajectories as csv or json",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	addSimFlags(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "csv or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "output file (- for stdout)")

	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "render tracking and control charts as png or svg",
		Args:  cobra.NoArgs,
		RunE:  runChart,
	}
	addSimFlags(chartCmd)
	chartCmd.Flags().StringVar(&chartFormat, "format", "png", "png or svg")
	chartCmd.Flags().StringVarP(&chartOut, "out", "o", ".", "output directory")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive tuner",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	addSimFlags(tuiCmd)

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list setpoint scenarios",
		Args:  cobra.NoArgs,
		RunE:  listScenarios,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list gain presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "pidlab.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, compareCmd, sweepCmd, tuneCmd, exportCmd, chartCmd, tuiCmd, scenariosCmd, presetsCmd, initCmd)
	return rootCmd
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "gain preset ("+strings.Join(config.ListPresets(), ", ")+")")
	cmd.Flags().StringVarP(&scenarioName, "scenario", "s", config.DefaultScenario, "setpoint scenario")
	cmd.Flags().Float64Var(&initial, "initial", scenario.DefaultInitial, "initial value")
	cmd.Flags().Float64Var(&duration, "time", 0, "duration override in seconds (0 = scenario default)")
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "pid kp")
	cmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "pid ki")
	cmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "pid kd")
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip ascii charts")
	cmd.Flags().IntVar(&width, "width", 80, "chart width")
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}

// session is everything a command needs after flags and config are merged.
type session struct {
	cfg      *config.Config
	scenario scenario.Scenario
	runner   *experiment.Runner
	logger   *zap.Logger
	styles   viz.Styles
	out      io.Writer
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	sc, err := cfg.GetScenario()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	logger.Debug("config resolved",
		zap.String("scenario", sc.Name),
		zap.Stringer("strategy", control.NewPIDStrategy(cfg.Gains)),
		zap.Int("workers", cfg.Workers),
	)
	return &session{
		cfg:      cfg,
		scenario: sc,
		runner:   experiment.NewRunner(logger, cfg.Workers),
		logger:   logger,
		styles:   viz.NewStyles(viz.GetTheme(cfg.Theme)),
		out:      cmd.OutOrStdout(),
	}, nil
}

func (s *session) close() { _ = s.logger.Sync() }

// loadConfig layers defaults, the config file, the preset and finally any
// flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		g, ok := config.GetPreset(preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Gains = g
	}

	flags := cmd.Flags()
	if flags.Changed("scenario") {
		cfg.Scenario = scenarioName
	}
	if flags.Changed("initial") {
		v := initial
		cfg.Initial = &v
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("kp") {
		cfg.Gains.Kp = kp
	}
	if flags.Changed("ki") {
		cfg.Gains.Ki = ki
	}
	if flags.Changed("kd") {
		cfg.Gains.Kd = kd
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("metric") {
		cfg.Tune.Metric = metricName
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, registry *experiment.Registry, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	name := "pid"
	if len(args) > 0 {
		name = args[0]
	}
	kind, err := control.ParseKind(name)
	if err != nil {
		return err
	}
	strategy, err := registry.GetController(kind.String(), experiment.GainParams(s.cfg.Gains))
	if err != nil {
		return err
	}

	out, err := s.runner.Run(cmd.Context(), s.scenario, strategy)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%s on %s (%s)\n\n", strategy, s.scenario.Name, s.scenario.Description)
	s.plot([]viz.Series{{Name: out.Name, Result: out.Result}})
	fmt.Fprintln(s.out, s.styles.SummaryTable([]string{out.Name}, []metrics.Summary{out.Summary}))
	if kind == control.KindPID {
		g := s.cfg.Gains
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, s.styles.Hints(metrics.Hints(g, out.Summary), metrics.Solved(g, out.Summary)))
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	cmp, err := s.runner.Compare(cmd.Context(), s.cfg.Gains, s.scenario)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%s vs baseline on %s\n\n", control.NewPIDStrategy(s.cfg.Gains), s.scenario.Name)
	s.plot([]viz.Series{
		{Name: "pid", Result: cmp.PID.Result},
		{Name: "baseline", Result: cmp.Baseline.Result},
	})
	fmt.Fprintln(s.out, s.styles.Scorecard(cmp.Scorecard))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	modeName := s.cfg.Mode
	if len(args) > 0 {
		modeName = args[0]
	}
	mode, err := experiment.ParseMode(modeName)
	if err != nil {
		return err
	}

	res, err := s.runner.Sweep(cmd.Context(), mode, s.cfg.Gains, s.scenario)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, s.styles.Title.Render(res.Title))
	if res.Demo != "" {
		fmt.Fprintln(s.out, s.styles.Subtle.Render(res.Demo))
	}
	fmt.Fprintln(s.out)

	series := []viz.Series{{Name: "yours", Result: res.Current.Result}}
	names := []string{"yours"}
	sums := []metrics.Summary{res.Current.Summary}
	for _, m := range res.Members {
		label := m.Label
		if m.Highlighted {
			label += "*"
		}
		series = append(series, viz.Series{Name: label, Result: m.Result})
		names = append(names, label)
		sums = append(sums, m.Summary)
	}
	s.plot(series)
	fmt.Fprintln(s.out, s.styles.SummaryTable(names, sums))
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, s.styles.Hints(res.Hints, res.Solved))
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	t := s.cfg.Tune
	grid := optim.NewGridSearch(
		optim.Range(t.Kp.Min, t.Kp.Max, t.Kp.Step),
		optim.Range(t.Ki.Min, t.Ki.Max, t.Ki.Step),
		optim.Range(t.Kd.Min, t.Kd.Max, t.Kd.Step),
	)

	fmt.Fprintf(s.out, "searching %d gain combinations on %s minimizing %s...\n", grid.Size(), s.scenario.Name, t.Metric)
	best, cmp, err := s.runner.Tune(cmd.Context(), grid, s.scenario, t.Metric)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\nbest: %s  %s=%.4f\n\n", control.NewPIDStrategy(best.Gains), t.Metric, best.Value)
	fmt.Fprintln(s.out, s.styles.Scorecard(cmp.Scorecard))
	return nil
}

func (s *session) exportRuns(ctx context.Context) ([]export.Run, error) {
	cmp, err := s.runner.Compare(ctx, s.cfg.Gains, s.scenario)
	if err != nil {
		return nil, err
	}
	return []export.Run{
		{Name: "pid", Result: cmp.PID.Result},
		{Name: "baseline", Result: cmp.Baseline.Result},
	}, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(exportFormat)
	if format != "csv" && format != "json" {
		return fmt.Errorf("unknown export format: %s (available: csv, json)", exportFormat)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	runs, err := s.exportRuns(cmd.Context())
	if err != nil {
		return err
	}

	switch {
	case format == "csv" && exportOut == "-":
		return export.WriteCSV(s.out, runs...)
	case format == "csv":
		err = export.ExportCSV(exportOut, runs...)
	case exportOut == "-":
		return export.WriteJSON(s.out, s.scenario.Name, runs...)
	default:
		err = export.ExportJSON(exportOut, s.scenario.Name, runs...)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "exported %d runs to %s\n", len(runs), exportOut)
	return nil
}

func runChart(cmd *cobra.Command, args []string) error {
	ext := "." + strings.TrimPrefix(strings.ToLower(chartFormat), ".")
	if ext != ".png" && ext != ".svg" {
		return fmt.Errorf("unknown chart format: %s (available: png, svg)", chartFormat)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if err := os.MkdirAll(chartOut, 0755); err != nil {
		return err
	}

	runs, err := s.exportRuns(cmd.Context())
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s vs baseline, %s", control.NewPIDStrategy(s.cfg.Gains), s.scenario.Name)
	paths, err := export.SaveCharts(chartOut, ext, title, runs...)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(s.out, "wrote %s\n", filepath.Clean(p))
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	return tui.Run(cmd.Context(), s.runner, tui.Options{
		Gains:    s.cfg.Gains,
		Scenario: s.cfg.Scenario,
		Theme:    s.cfg.Theme,
	})
}

// listScenarios prints the learn challenges, then the tune scenarios, with
// their setpoint changes and a sparkline of the profile.
func listScenarios(cmd *cobra.Command, args []string) error {
	styles := viz.NewStyles(viz.GetTheme(theme))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKFLOW\tNAME\tDURATION\tINITIAL\tCHANGES\tPROFILE")
	for _, group := range []struct {
		workflow string
		names    []string
	}{
		{"learn", scenario.Learn},
		{"tune", scenario.Tune},
	} {
		for _, name := range group.names {
			sc, err := scenario.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%.0fs\t%.1f\t%s\t%s\n",
				group.workflow, sc.Name, sc.Duration, sc.Initial, sc.Schedule(),
				styles.SparklineChart(sc.Sample(24), 24))
		}
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tKP\tKI\tKD")
	for _, name := range config.ListPresets() {
		g, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\n", name, g.Kp, g.Ki, g.Kd)
	}
	return w.Flush()
}

func (s *session) plot(series []viz.Series) {
	if noPlot {
		return
	}
	opts := viz.ChartOptions{Width: width, Height: 12}
	fmt.Fprintln(s.out, viz.TrackingChart(series, opts))
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, viz.ControlChart(series, viz.ChartOptions{Width: width, Height: 8}))
	fmt.Fprintln(s.out)
}
