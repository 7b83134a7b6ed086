package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravbox/internal/automation"
	"github.com/san-kum/gravbox/internal/export"
	"github.com/san-kum/gravbox/internal/physics"
	"github.com/san-kum/gravbox/internal/storage"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

// loadScenario reads a scenario file, falling back to a built-in name.
func loadScenario(arg string) (*automation.Scenario, error) {
	if arg == "" {
		arg = "orbit"
	}
	if _, err := os.Stat(arg); err == nil {
		return automation.LoadScenario(arg)
	}
	sc, ok := automation.Builtin(arg)
	if !ok {
		return nil, fmt.Errorf("no scenario file or built-in named %q (built-ins: %v)", arg, automation.ListBuiltins())
	}
	return sc, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	sc, err := loadScenario(arg)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		sc.Preset = preset
	}
	if flags.Changed("width") {
		sc.Width = width
	}
	if flags.Changed("height") {
		sc.Height = height
	}
	if flags.Changed("seed") {
		sc.Seed = seed
	}
	if flags.Changed("ticks") {
		sc.Ticks = ticks
	}
	if flags.Changed("dt") {
		sc.Dt = dt
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := automation.Options{StabilityThreshold: threshold}
	logger.Printf("scenario %q: %d ticks, %d events", sc.Name, sc.Ticks, len(sc.Events))

	if trials > 1 {
		return runTrials(ctx, sc, opts)
	}

	frame := &lastFrame{}
	opts.Observers = append(opts.Observers, removalLog{}, frame)
	report, err := automation.RunScenario(ctx, sc, opts)
	if err != nil {
		return err
	}

	if jsonOut {
		if err := storage.ExportJSON(os.Stdout, report); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	if svgFile != "" && frame.world != nil {
		cfg, err := sc.Config()
		if err != nil {
			return err
		}
		if err := os.WriteFile(svgFile, []byte(export.WorldToSVG(frame.world, cfg)), 0644); err != nil {
			return err
		}
		logger.Printf("final frame written to %s", svgFile)
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(report)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Printf("saved %s\n", runID)
	}
	return nil
}

// lastFrame keeps the world as of the latest tick.
type lastFrame struct{ world *physics.World }

func (f *lastFrame) OnTick(tick int, w *physics.World, r physics.StepResult) { f.world = w }

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tSEED\tTICKS\tFINAL\tREMOVED\tTIME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			r.ID, r.Scenario, r.Seed, r.Ticks, r.Final, r.Removed, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return fmt.Errorf("run not found: %s", args[0])
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	printReport(&automation.Report{
		Name:    meta.Scenario,
		Seed:    meta.Seed,
		Ticks:   meta.Ticks,
		Final:   meta.Final,
		Removed: meta.Removed,
		Metrics: meta.Metrics,
		Bodies:  series.Bodies,
		Energy:  series.Energy,
	})

	if plotSVG != "" {
		svg := export.SeriesToSVG(series.Energy, 800, 300, "#00ccff")
		if svg == "" {
			return fmt.Errorf("run %s has too few ticks to plot", args[0])
		}
		return os.WriteFile(plotSVG, []byte(svg), 0644)
	}
	return nil
}

func runTrials(ctx context.Context, sc *automation.Scenario, opts automation.Options) error {
	results, err := automation.RunTrials(ctx, sc, trials, opts)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s × %d", sc.Name, trials)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tBODIES\tREMOVED\tMEAN KE\tSTABILITY")
	for i, r := range results {
		stability := "-"
		if v, ok := r.Metrics["stability"]; ok {
			stability = fmt.Sprintf("%.2f", v)
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%.4g\t%s\n", i, r.Bodies, r.Removed, r.Metrics["kinetic_energy"], stability)
	}
	w.Flush()

	intact, lossy := automation.TrialStats(results)
	fmt.Printf("\n%s %d  %s %d\n", labelStyle.Render("intact"), intact, labelStyle.Render("lossy"), lossy)
	return nil
}

func printReport(r *automation.Report) {
	fmt.Println(titleStyle.Render(r.Name))
	row := func(label, value string) {
		fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-14s", label)), valueStyle.Render(value))
	}
	row("seed", fmt.Sprint(r.Seed))
	row("ticks", fmt.Sprint(r.Ticks))
	row("final bodies", fmt.Sprint(r.Final))
	row("removed", fmt.Sprint(r.Removed))
	for _, name := range []string{"bodies", "kinetic_energy", "stability"} {
		if v, ok := r.Metrics[name]; ok {
			row(name, fmt.Sprintf("%.4g", v))
		}
	}

	if len(r.Bodies) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(r.Bodies,
			asciigraph.Height(6),
			asciigraph.Width(70),
			asciigraph.Caption("bodies per tick"),
		))
	}
	if len(r.Energy) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(r.Energy,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("kinetic energy"),
		))
	}
}
