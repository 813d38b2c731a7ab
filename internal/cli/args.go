package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yiblet/eqplot/internal/config"
)

// Args represents the top-level command structure
type Args struct {
	ConfigPath  *string `arg:"--config,env:EQPLOT_CONFIG" help:"Config file (default: ~/.config/eqplot/config.yaml)"`
	HistoryPath *string `arg:"--history" help:"History file, overrides history-file / history-db from the config"`
	Backend     *string `arg:"--backend" help:"History backend: csv or sqlite"`

	Plot     *PlotCmd     `arg:"subcommand:plot" help:"Plot an equation and record it in the history"`
	History  *HistoryCmd  `arg:"subcommand:history" help:"List the plot history"`
	Delete   *DeleteCmd   `arg:"subcommand:delete" help:"Delete one history record"`
	Clear    *ClearCmd    `arg:"subcommand:clear" help:"Delete every history record"`
	Export   *ExportCmd   `arg:"subcommand:export" help:"Export the history to a spreadsheet or CSV file"`
	Color    *ColorCmd    `arg:"subcommand:color" help:"List the colour palette or set the default plot colour"`
	Copy     *CopyCmd     `arg:"subcommand:copy" help:"Copy a history equation to the clipboard"`
	Config   *ConfigCmd   `arg:"subcommand:config" help:"Manage configuration"`
	Examples *ExamplesCmd `arg:"subcommand:examples" help:"List example equations"`
	Browse   *BrowseCmd   `arg:"subcommand:browse" help:"Open the interactive history browser (default)"`
}

// PlotCmd represents the 'eqplot plot' command
type PlotCmd struct {
	Equation *string `arg:"positional" help:"Equation in x, e.g. 'sin(x) * x^2'"`
	Min      *string `arg:"--min" help:"Lower x bound (negative values as --min=-5)"`
	Max      *string `arg:"--max" help:"Upper x bound"`
	Color    *string `arg:"-c,--color" help:"Plot colour: palette name or hex"`
	Samples  *int    `arg:"-n,--samples" help:"Number of sample points"`
	From     *int    `arg:"--from" help:"Reload equation, range and colour from this history index"`
	Width    int     `arg:"--width" help:"Plot width in cells (default 72)"`
	Height   int     `arg:"--height" help:"Plot height in cells (default 20)"`
	NoSave   bool    `arg:"--no-save" help:"Do not record the plot in the history"`
	Points   bool    `arg:"--points" help:"Print the sample points as x,y instead of drawing"`
}

// HistoryCmd represents the 'eqplot history' command
type HistoryCmd struct{}

// DeleteCmd represents the 'eqplot delete' command
type DeleteCmd struct {
	Index int `arg:"positional,required" help:"History index to delete (0 = oldest)"`
}

// ClearCmd represents the 'eqplot clear' command
type ClearCmd struct {
	Force bool `arg:"-f,--force" help:"Skip confirmation prompt"`
}

// ExportCmd represents the 'eqplot export' command
type ExportCmd struct {
	Path *string `arg:"positional" help:"Output file, .xlsx or .csv (default: export-file from the config)"`
}

// ColorCmd represents the 'eqplot color' command
type ColorCmd struct {
	Value *string `arg:"positional" help:"Palette name or hex colour to use by default"`
}

// CopyCmd represents the 'eqplot copy' command
type CopyCmd struct {
	Index *int `arg:"positional" help:"History index to copy (default: most recent)"`
	Range bool `arg:"-r,--range" help:"Include the x range"`
}

// ConfigCmd represents the 'eqplot config' command
type ConfigCmd struct {
	Get  *ConfigGetCmd  `arg:"subcommand:get" help:"Get a configuration value"`
	Set  *ConfigSetCmd  `arg:"subcommand:set" help:"Set a configuration value"`
	List *ConfigListCmd `arg:"subcommand:list" help:"List all configuration values"`
}

// ConfigGetCmd represents the 'eqplot config get' command
type ConfigGetCmd struct {
	Key string `arg:"positional,required" help:"Configuration key"`
}

// ConfigSetCmd represents the 'eqplot config set' command
type ConfigSetCmd struct {
	Key   string `arg:"positional,required" help:"Configuration key"`
	Value string `arg:"positional,required" help:"Configuration value"`
}

// ConfigListCmd represents the 'eqplot config list' command
type ConfigListCmd struct{}

// ExamplesCmd represents the 'eqplot examples' command
type ExamplesCmd struct{}

// BrowseCmd represents the 'eqplot browse' command
type BrowseCmd struct{}

// Description returns the program description
func (Args) Description() string {
	return "eqplot - plot equations in the terminal and keep a history of them"
}

// Version returns the program version
func (Args) Version() string {
	return "eqplot 0.1.0"
}

// Epilogue returns additional help text
func (Args) Epilogue() string {
	return `Examples:
  # Plotting
  eqplot plot 'x^2'                      # Plot over the default range
  eqplot plot 'sin(x)/x' --min=-20 --max=20
  eqplot plot 'sqrt(x)' -c teal          # Palette colour
  eqplot plot --from 3                   # Replot history record 3

  # History
  eqplot                                 # Interactive browser
  eqplot history                         # List records
  eqplot copy --range                    # Copy latest equation and range
  eqplot export history.xlsx             # Spreadsheet export
  eqplot clear -f                        # Delete everything

  # Configuration
  eqplot config set backend sqlite
  eqplot color purple`
}

// Subcommand reports whether any subcommand was given.
func (args *Args) Subcommand() bool {
	return args.Plot != nil || args.History != nil || args.Delete != nil ||
		args.Clear != nil || args.Export != nil || args.Color != nil ||
		args.Copy != nil || args.Config != nil || args.Examples != nil ||
		args.Browse != nil
}

// Validate performs validation on the parsed arguments
func (args *Args) Validate() error {
	if args.Backend != nil {
		switch *args.Backend {
		case "csv", "sqlite":
		default:
			return fmt.Errorf("backend must be csv or sqlite, got %q", *args.Backend)
		}
	}
	if args.HistoryPath != nil && strings.TrimSpace(*args.HistoryPath) == "" {
		return fmt.Errorf("history path must not be empty")
	}

	switch {
	case args.Plot != nil:
		return args.Plot.Validate()
	case args.Delete != nil:
		return args.Delete.Validate()
	case args.Copy != nil:
		return args.Copy.Validate()
	case args.Config != nil:
		return args.Config.Validate()
	}
	return nil
}

// Validate validates plot command arguments
func (p *PlotCmd) Validate() error {
	if p.Equation == nil && p.From == nil {
		return fmt.Errorf("an equation or --from INDEX is required")
	}
	if p.Equation != nil && p.From != nil {
		return fmt.Errorf("cannot specify both an equation and --from")
	}
	if p.From != nil && *p.From < 0 {
		return fmt.Errorf("index must be non-negative")
	}
	if p.Samples != nil && *p.Samples < 2 {
		return fmt.Errorf("samples must be at least 2")
	}
	if (p.Width != 0 && p.Width < 8) || (p.Height != 0 && p.Height < 4) {
		return fmt.Errorf("plot must be at least 8x4 cells")
	}
	return nil
}

// Validate validates delete command arguments
func (d *DeleteCmd) Validate() error {
	if d.Index < 0 {
		return fmt.Errorf("index must be non-negative")
	}
	return nil
}

// Validate validates copy command arguments
func (c *CopyCmd) Validate() error {
	if c.Index != nil && *c.Index < 0 {
		return fmt.Errorf("index must be non-negative")
	}
	return nil
}

// Validate validates config command arguments
func (c *ConfigCmd) Validate() error {
	count := 0
	if c.Get != nil {
		count++
	}
	if c.Set != nil {
		count++
	}
	if c.List != nil {
		count++
	}
	if count == 0 {
		return fmt.Errorf("must specify one of: get, set, list")
	}
	if count > 1 {
		return fmt.Errorf("can only specify one config subcommand")
	}

	if c.Get != nil && !validKey(c.Get.Key) {
		return fmt.Errorf("invalid config key: %s (valid keys: %s)", c.Get.Key, strings.Join(config.Keys, ", "))
	}
	if c.Set != nil && !validKey(c.Set.Key) {
		return fmt.Errorf("invalid config key: %s (valid keys: %s)", c.Set.Key, strings.Join(config.Keys, ", "))
	}
	return nil
}

func validKey(key string) bool {
	return slices.Contains(config.Keys, key)
}
