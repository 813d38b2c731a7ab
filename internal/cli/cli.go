package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/yiblet/eqplot/internal/appdir"
	"github.com/yiblet/eqplot/internal/clipboard"
	"github.com/yiblet/eqplot/internal/clipboard/sysboard"
	"github.com/yiblet/eqplot/internal/config"
	"github.com/yiblet/eqplot/internal/evaluator"
	"github.com/yiblet/eqplot/internal/history"
	"github.com/yiblet/eqplot/internal/logging"
	"github.com/yiblet/eqplot/internal/render"
	"github.com/yiblet/eqplot/internal/store"
	"github.com/yiblet/eqplot/internal/store/csvstore"
	"github.com/yiblet/eqplot/internal/store/dbstore"
	"github.com/yiblet/eqplot/internal/tui"
)

const (
	defaultPlotWidth  = 72
	defaultPlotHeight = 20
)

// CLI handles the command-line interface
type CLI struct {
	history   *history.Store
	config    *config.ConfigManager
	settings  *config.Config
	clipboard clipboard.Clipboard
	logger    *zap.Logger

	out io.Writer
	in  io.Reader
}

// Deps are the collaborators of a CLI. Nil fields get defaults.
type Deps struct {
	History   *history.Store
	Config    *config.ConfigManager
	Settings  *config.Config
	Clipboard clipboard.Clipboard
	Logger    *zap.Logger
	Out       io.Writer
	In        io.Reader
}

// NewWithDeps assembles a CLI from already constructed parts.
func NewWithDeps(d Deps) *CLI {
	c := &CLI{
		history:   d.History,
		config:    d.Config,
		settings:  d.Settings,
		clipboard: d.Clipboard,
		logger:    d.Logger,
		out:       d.Out,
		in:        d.In,
	}
	if c.settings == nil {
		c.settings = config.DefaultConfig()
	}
	if c.clipboard == nil {
		c.clipboard = sysboard.New()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.in == nil {
		c.in = os.Stdin
	}
	return c
}

// New creates a new CLI instance
func New() (*CLI, error) {
	return NewWithArgs(nil)
}

// NewWithArgs creates a CLI from the config file, with the global flags of
// args taking precedence over it.
func NewWithArgs(args *Args) (*CLI, error) {
	var cm *config.ConfigManager
	if args != nil && args.ConfigPath != nil {
		path, err := appdir.ExpandHome(*args.ConfigPath)
		if err != nil {
			return nil, err
		}
		cm = config.NewConfigManagerWithPath(path)
	} else {
		m, err := config.NewConfigManager()
		if err != nil {
			return nil, err
		}
		cm = m
	}

	settings, err := cm.Load()
	if err != nil {
		return nil, err
	}
	if args != nil {
		applyOverrides(settings, args)
	}

	logPath := settings.LogFile
	if logPath == "" {
		dir, err := appdir.New()
		if err != nil {
			return nil, err
		}
		logPath = dir.LogPath()
	}
	if logPath, err = appdir.ExpandHome(logPath); err != nil {
		return nil, err
	}
	logger, err := logging.New(settings.LogLevel, logPath)
	if err != nil {
		return nil, err
	}

	backend, err := OpenBackend(settings)
	if err != nil {
		logger.Sync()
		return nil, err
	}

	hist, err := history.Open(backend, history.WithLogger(logger))
	if err != nil {
		backend.Close()
		logger.Sync()
		return nil, err
	}

	return NewWithDeps(Deps{
		History:   hist,
		Config:    cm,
		Settings:  settings,
		Clipboard: sysboard.New(),
		Logger:    logger,
	}), nil
}

func applyOverrides(settings *config.Config, args *Args) {
	if args.Backend != nil {
		settings.Backend = *args.Backend
	}
	if args.HistoryPath != nil {
		if settings.Backend == config.BackendSQLite {
			settings.HistoryDB = *args.HistoryPath
		} else {
			settings.HistoryFile = *args.HistoryPath
		}
	}
}

// OpenBackend opens the history backend selected by settings.
func OpenBackend(settings *config.Config) (store.HistoryStore, error) {
	switch settings.Backend {
	case config.BackendSQLite:
		path, err := appdir.ExpandHome(settings.HistoryDB)
		if err != nil {
			return nil, err
		}
		s, err := dbstore.NewSQLiteStore(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
		return s, nil
	case config.BackendCSV, "":
		path, err := appdir.ExpandHome(settings.HistoryFile)
		if err != nil {
			return nil, err
		}
		return csvstore.New(path,
			csvstore.WithAtomicWrites(settings.AtomicWrites),
			csvstore.WithColorName(history.ColorName),
		), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", settings.Backend)
	}
}

// Close releases the history backend and flushes the log.
func (c *CLI) Close() error {
	var err error
	if c.history != nil {
		err = c.history.Close()
	}
	c.logger.Sync()
	return err
}

// Execute runs the CLI command based on parsed arguments
func (c *CLI) Execute(args *Args) error {
	if err := args.Validate(); err != nil {
		return err
	}

	switch {
	case args.Plot != nil:
		return c.executePlot(args.Plot)
	case args.History != nil:
		return c.executeHistory()
	case args.Delete != nil:
		return c.executeDelete(args.Delete)
	case args.Clear != nil:
		return c.executeClear(args.Clear)
	case args.Export != nil:
		return c.executeExport(args.Export)
	case args.Color != nil:
		return c.executeColor(args.Color)
	case args.Copy != nil:
		return c.executeCopy(args.Copy)
	case args.Config != nil:
		return c.executeConfig(args.Config)
	case args.Examples != nil:
		return c.executeExamples()
	default:
		// Default behavior: launch TUI
		return c.launchTUI()
	}
}

// executePlot handles the 'eqplot plot' command
func (c *CLI) executePlot(cmd *PlotCmd) error {
	equation := ""
	minText := store.FormatFloat(c.settings.MinX)
	maxText := store.FormatFloat(c.settings.MaxX)
	color := c.settings.Color

	if cmd.From != nil {
		rec, err := c.history.Get(*cmd.From)
		if err != nil {
			return err
		}
		equation = rec.Equation
		minText = store.FormatFloat(rec.MinX)
		maxText = store.FormatFloat(rec.MaxX)
		color = rec.Color
		fmt.Fprintf(c.out, "Loaded equation from history: %s\n", history.DisplayEquation(equation))
	} else {
		equation = *cmd.Equation
	}

	if cmd.Min != nil {
		minText = *cmd.Min
	}
	if cmd.Max != nil {
		maxText = *cmd.Max
	}
	if cmd.Color != nil {
		hex, err := history.ResolveColor(c.history.Validator(), *cmd.Color)
		if err != nil {
			return err
		}
		color = hex
	}
	samples := c.settings.Samples
	if cmd.Samples != nil {
		samples = *cmd.Samples
	}

	var set *evaluator.SampleSet
	added := false
	if cmd.NoSave {
		r, err := evaluator.ParseRange(minText, maxText)
		if err != nil {
			return err
		}
		if set, err = evaluator.EvaluateN(equation, r.Min, r.Max, samples); err != nil {
			return err
		}
	} else {
		res, err := c.history.Plot(equation, minText, maxText, color, samples)
		if err != nil {
			return err
		}
		set, added = res.Samples, res.Added
	}

	if cmd.Points {
		for _, p := range set.Points {
			fmt.Fprintf(c.out, "%s,%s\n", store.FormatFloat(p.X), store.FormatFloat(p.Y))
		}
		return nil
	}

	width, height := cmd.Width, cmd.Height
	if width == 0 {
		width = defaultPlotWidth
	}
	if height == 0 {
		height = defaultPlotHeight
	}
	plot := render.Render(set, width, height)
	fmt.Fprintln(c.out, plot.Styled(color))
	fmt.Fprintf(c.out, "x: [%s, %s]  y: [%.4g, %.4g]\n",
		store.FormatFloat(plot.XMin), store.FormatFloat(plot.XMax), plot.YMin, plot.YMax)
	if set.Dropped() > 0 {
		fmt.Fprintf(c.out, "%d of %d samples had no real value\n", set.Dropped(), set.GridSize)
	}

	fmt.Fprintf(c.out, "Plotted: %s\n", history.DisplayEquation(equation))
	if !cmd.NoSave && !added {
		fmt.Fprintln(c.out, "Same as the most recent record; history unchanged.")
	}
	return nil
}

// executeHistory handles the 'eqplot history' command
func (c *CLI) executeHistory() error {
	records := c.history.Records()
	if len(records) == 0 {
		fmt.Fprintln(c.out, "History is empty.")
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "To plot an equation:")
		fmt.Fprintln(c.out, "  eqplot plot 'x^2'")
		return nil
	}

	for i, rec := range records {
		rec.Equation = history.DisplayEquation(rec.Equation)
		fmt.Fprintf(c.out, "%3d  %s  %s\n", i, swatch(rec.Color, rec.ColorName), rec.Summary())
	}
	return nil
}

// executeDelete handles the 'eqplot delete' command
func (c *CLI) executeDelete(cmd *DeleteCmd) error {
	rec, err := c.history.Get(cmd.Index)
	if err != nil {
		return err
	}
	if err := c.history.Delete(cmd.Index); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Deleted selected history: %s\n", history.DisplayEquation(rec.Equation))
	return nil
}

// executeClear handles the 'eqplot clear' command
func (c *CLI) executeClear(cmd *ClearCmd) error {
	n := c.history.Len()
	if n == 0 {
		fmt.Fprintln(c.out, "History is already empty.")
		return nil
	}

	// Prompt for confirmation unless --force is used
	if !cmd.Force {
		fmt.Fprintf(c.out, "Clear all equation history? This deletes %d record(s). [y/N]: ", n)
		response, _ := bufio.NewReader(c.in).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(c.out, "Cancelled.")
			return nil
		}
	}

	if err := c.history.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Cleared %d record(s) from history.\n", n)
	return nil
}

// executeExport handles the 'eqplot export' command
func (c *CLI) executeExport(cmd *ExportCmd) error {
	path := c.settings.ExportFile
	if cmd.Path != nil {
		path = *cmd.Path
	}
	path, err := appdir.ExpandHome(path)
	if err != nil {
		return err
	}

	n, err := c.history.Export(path)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(c.out, "No history to export.")
		return nil
	}
	fmt.Fprintf(c.out, "History saved to %s (%d records)\n", path, n)
	return nil
}

// executeColor handles the 'eqplot color' command
func (c *CLI) executeColor(cmd *ColorCmd) error {
	if cmd.Value == nil {
		current := strings.ToLower(c.settings.Color)
		for _, nc := range history.Palette {
			mark := " "
			if nc.Hex == current {
				mark = "*"
			}
			fmt.Fprintf(c.out, "%s %s  %-8s %s\n", mark, swatch(nc.Hex, ""), nc.Name, nc.Hex)
		}
		if history.ColorName(current) == history.CustomColorName && current != history.DefaultColor {
			fmt.Fprintf(c.out, "* %s  %-8s %s\n", swatch(current, ""), history.CustomColorName, current)
		}
		return nil
	}

	hex, err := history.ResolveColor(c.history.Validator(), *cmd.Value)
	if err != nil {
		return err
	}
	if c.config == nil {
		return errors.New("no configuration file to update")
	}
	if err := c.config.Update("color", hex); err != nil {
		return fmt.Errorf("failed to set color: %w", err)
	}
	c.settings.Color = hex
	fmt.Fprintf(c.out, "Default colour set to %s (%s)\n", hex, history.ColorName(hex))
	return nil
}

// executeCopy handles the 'eqplot copy' command
func (c *CLI) executeCopy(cmd *CopyCmd) error {
	index := c.history.Len() - 1
	if cmd.Index != nil {
		index = *cmd.Index
	}
	if c.history.Len() == 0 {
		return errors.New("history is empty; nothing to copy")
	}
	rec, err := c.history.Get(index)
	if err != nil {
		return err
	}

	text := clipboard.FormatRecord(rec.Equation, store.FormatFloat(rec.MinX), store.FormatFloat(rec.MaxX), cmd.Range)
	if err := c.clipboard.Write(text); err != nil {
		return fmt.Errorf("failed to write to clipboard: %w", err)
	}
	fmt.Fprintf(c.out, "Copied to clipboard: %s\n", history.DisplayEquation(text))
	return nil
}

// executeConfig handles the 'eqplot config' command
func (c *CLI) executeConfig(cmd *ConfigCmd) error {
	if c.config == nil {
		return errors.New("no configuration file available")
	}

	switch {
	case cmd.Get != nil:
		value, err := c.config.Get(cmd.Get.Key)
		if err != nil {
			return fmt.Errorf("failed to get config value: %w", err)
		}
		fmt.Fprintln(c.out, value)
		return nil

	case cmd.Set != nil:
		if err := c.config.Update(cmd.Set.Key, cmd.Set.Value); err != nil {
			return fmt.Errorf("failed to set config value: %w", err)
		}
		fmt.Fprintf(c.out, "Set %s = %s\n", cmd.Set.Key, cmd.Set.Value)
		return nil

	case cmd.List != nil:
		values, err := c.config.List()
		if err != nil {
			return fmt.Errorf("failed to list config values: %w", err)
		}
		fmt.Fprintf(c.out, "Current configuration (%s):\n", c.config.GetConfigPath())
		for _, key := range config.SortedKeys(values) {
			fmt.Fprintf(c.out, "  %s = %s\n", key, values[key])
		}
		return nil

	default:
		return fmt.Errorf("no config subcommand specified")
	}
}

// executeExamples handles the 'eqplot examples' command
func (c *CLI) executeExamples() error {
	fmt.Fprintln(c.out, "Example equations (keys 1-8 in the browser):")
	for i, eq := range evaluator.Examples {
		fmt.Fprintf(c.out, "  %d  %s\n", i+1, eq)
	}
	return nil
}

// launchTUI starts the interactive TUI
func (c *CLI) launchTUI() error {
	return tui.Run(tui.Options{
		History:   c.history,
		Clipboard: c.clipboard,
		Logger:    c.logger,
		Settings: tui.Settings{
			MinX:       c.settings.MinX,
			MaxX:       c.settings.MaxX,
			Color:      c.settings.Color,
			Samples:    c.settings.Samples,
			ExportPath: c.settings.ExportFile,
		},
	})
}

// swatch renders a coloured block followed by the colour name.
func swatch(hex, name string) string {
	block := lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██")
	if name == "" {
		return block
	}
	return fmt.Sprintf("%s %-8s", block, name)
}
