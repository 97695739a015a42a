package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/springies/internal/config"
	"github.com/san-kum/springies/internal/env"
	"github.com/san-kum/springies/internal/input"
	"github.com/san-kum/springies/internal/metrics"
	"github.com/san-kum/springies/internal/model"
	"github.com/san-kum/springies/internal/sim"
	"github.com/san-kum/springies/internal/storage"
	"github.com/san-kum/springies/internal/vect"
	"github.com/san-kum/springies/internal/viz"
)

var (
	dataDir    string
	envFile    string
	configFile string
	preset     string
	dt         float64
	duration   float64
	width      float64
	height     float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "springies",
		Short: "particle-and-spring physics simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".springies", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model-file]",
		Short: "run a simulation headless and store the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [model-file]",
		Short: "run with live terminal visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [model-file] [preset1] [preset2] ...",
		Short: "run the same model under several presets",
		Args:  cobra.MinimumNArgs(2),
		RunE:  comparePresets,
	}
	addRunFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a full run as JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available environment presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, compareCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&envFile, "env", "", "environment description file")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "environment preset")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "world width")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "world height")
}

// resolveConfig layers preset, config file, and flags, flags winning.
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

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("width") {
		cfg.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = height
	}
	return cfg, nil
}

// buildModel assembles the environment and loads the model file.
func buildModel(modelPath string, cfg *config.Config) (*model.Model, *input.Commands, *input.Pointer, error) {
	keys := &input.Commands{}
	pointer := &input.Pointer{}

	e := env.New(cfg.Environment)
	if envFile != "" {
		if err := e.Load(envFile); err != nil {
			return nil, nil, nil, err
		}
	}

	bounds := vect.NewRect(0, 0, cfg.Width, cfg.Height)
	md := model.New(e, keys, pointer, bounds, cfg.PullMagnitude)
	if err := md.Load(modelPath); err != nil {
		return nil, nil, nil, err
	}
	return md, keys, pointer, nil
}

func massIDs(md *model.Model) []string {
	ids := make([]string, 0, len(md.Masses()))
	for _, m := range md.Masses() {
		ids = append(ids, m.ID)
	}
	return ids
}

func modelName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	md, _, _, err := buildModel(args[0], cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(md)
	runner.AddMetric(metrics.NewEnergy())
	runner.AddMetric(metrics.NewContainment())

	simCfg := sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, ValidateState: true}

	fmt.Printf("running %s...\n", modelName(args[0]))
	start := time.Now()

	result, err := runner.RunConfig(context.Background(), simCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(modelName(args[0]), massIDs(md), simCfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, simErr := range result.Errors {
		fmt.Printf("warning: %v\n", simErr)
	}
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

	md, keys, pointer, err := buildModel(args[0], cfg)
	if err != nil {
		return err
	}
	return viz.Run(md, keys, pointer, cfg, modelName(args[0]))
}

func comparePresets(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	modelPath := args[0]

	params := make([]env.Params, 0, len(args)-1)
	names := make([]string, 0, len(args)-1)
	for _, name := range args[1:] {
		p, ok := config.EnvParams(name)
		if !ok {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		params = append(params, p)
		names = append(names, name)
	}

	build := func(p env.Params) (*sim.Runner, error) {
		bounds := vect.NewRect(0, 0, cfg.Width, cfg.Height)
		md := model.New(env.New(p), &input.Commands{}, &input.Pointer{}, bounds, cfg.PullMagnitude)
		if err := md.Load(modelPath); err != nil {
			return nil, err
		}
		runner := sim.New(md)
		runner.AddMetric(metrics.NewEnergy())
		runner.AddMetric(metrics.NewContainment())
		return runner, nil
	}

	simCfg := sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, ValidateState: true}
	results, err := sim.NewEnsemble(build, params).Run(context.Background(), simCfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSTEPS\tENERGY\tCONTAINMENT")
	for i, res := range results {
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4f\n",
			names[i], res.StepsTaken, res.Metrics["energy"], res.Metrics["containment"])
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tMASSES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			len(run.Masses),
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
	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(frames))

	// One y-track per mass, a few masses at most.
	maxPlots := 4
	for i, id := range meta.Masses {
		if i >= maxPlots {
			fmt.Printf("(%d more masses not shown)\n", len(meta.Masses)-maxPlots)
			break
		}
		col := i*2 + 1 // y coordinate
		data := make([]float64, len(frames))
		for j := range frames {
			if col < len(frames[j]) {
				data[j] = frames[j][col]
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("mass %s: y vs time", id)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for _, id := range meta.Masses {
		header = append(header, "x_"+id, "y_"+id)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, frame := range frames {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range frame {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, frames, times)
}
