package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/gravbox/internal/automation"
	"github.com/san-kum/gravbox/internal/config"
	"github.com/san-kum/gravbox/internal/control"
	"github.com/san-kum/gravbox/internal/gui"
	"github.com/san-kum/gravbox/internal/layout"
	"github.com/san-kum/gravbox/internal/physics"
	"github.com/san-kum/gravbox/internal/sim"
	"github.com/san-kum/gravbox/internal/tui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configFile string
	preset     string
	width      int
	height     int
	seed       int64
	verbose    bool

	// run
	ticks     int
	dt        float64
	trials    int
	threshold float64

	// run output
	dataDir string
	save    bool
	jsonOut bool
	svgFile string
	plotSVG string

	// config
	outFile string
)

var logger = log.New(os.Stderr, "gravbox: ", log.LstdFlags)

func main() {
	rootCmd := &cobra.Command{
		Use:          "gravbox",
		Short:        "2d gravity sandbox",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !verbose {
				logger.SetOutput(io.Discard)
			}
		},
		RunE: runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0, "canvas width (overrides config)")
	rootCmd.PersistentFlags().IntVar(&height, "height", 0, "canvas height (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravbox", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the sandbox window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the sandbox in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "replay a scenario file or built-in scenario headless",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks (overrides scenario)")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "tick length in seconds (overrides scenario)")
	runCmd.Flags().IntVar(&trials, "trials", 1, "replay under this many consecutive seeds in parallel")
	runCmd.Flags().Float64Var(&threshold, "stability", 5, "speed above which a tick counts as unstable (0 disables)")
	runCmd.Flags().BoolVar(&save, "save", false, "save the report under the data directory")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the report as json")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "write the final frame to an svg file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "write the energy series to an svg file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets and built-in scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			fmt.Println("scenarios:")
			for _, s := range automation.ListBuiltins() {
				fmt.Printf("  %s\n", s)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration as yaml",
		Args:  cobra.NoArgs,
		RunE:  printConfig,
	}
	configCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, listCmd, plotCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the config file or preset, then applies flag overrides.
// A config file wins over a preset.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	default:
		cfg = config.DefaultConfig()
	}

	w, h := cfg.Width, cfg.Height
	if cmd.Flags().Changed("width") {
		w = width
	}
	if cmd.Flags().Changed("height") {
		h = height
	}
	cfg.Derive(w, h)

	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Printf("config: %dx%d fps=%d g=%g integration=%s seed=%d",
		cfg.Width, cfg.Height, cfg.FPS, cfg.G, cfg.Integration, cfg.Seed)
	return cfg, nil
}

func newSession(cfg *config.Config) (*sim.Simulator, *layout.Layout) {
	l := layout.New(cfg.Width, cfg.Height)
	world := physics.NewWorld()
	ctrl := control.New(cfg, world, l, rand.New(rand.NewSource(cfg.Seed)))
	s := sim.New(cfg, world, ctrl)
	s.AddObserver(removalLog{})
	return s, l
}

// removalLog reports culled and deleted bodies when running verbose.
type removalLog struct{}

func (removalLog) OnTick(tick int, w *physics.World, r physics.StepResult) {
	if len(r.Removed) > 0 {
		logger.Printf("tick %d: removed %v, %d bodies left", tick, r.Removed, w.Len())
	}
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, l := newSession(cfg)
	gui.Run(s, l)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, l := newSession(cfg)
	return tui.Run(s, l)
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if outFile != "" {
		if err := config.Save(outFile, cfg); err != nil {
			return err
		}
		fmt.Printf("config written to %s\n", outFile)
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
