// Package appdir locates the per-user eqplot directory that holds the
// config file and the log.
package appdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ConfigDir is the application directory relative to the home directory.
	ConfigDir = ".config/eqplot"

	ConfigFile = "config.yaml"
	LogFile    = "eqplot.log"
)

// Dir is the eqplot application directory.
type Dir struct {
	root string
}

// New returns the directory rooted at ~/.config/eqplot/.
// The directory is not created until Ensure is called.
func New() (*Dir, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return &Dir{root: filepath.Join(home, ConfigDir)}, nil
}

// NewWithRoot creates a Dir with a custom root (for testing)
func NewWithRoot(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the root directory path
func (d *Dir) Root() string {
	return d.root
}

// Ensure creates the directory if it does not exist yet.
func (d *Dir) Ensure() error {
	if err := os.MkdirAll(d.root, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", d.root, err)
	}
	return nil
}

// Path returns name joined onto the root.
func (d *Dir) Path(name string) string {
	return filepath.Join(d.root, name)
}

// ConfigPath returns the default config file path.
func (d *Dir) ConfigPath() string {
	return d.Path(ConfigFile)
}

// LogPath returns the default log file path.
func (d *Dir) LogPath() string {
	return d.Path(LogFile)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
// Any other path is returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
