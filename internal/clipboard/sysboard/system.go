// Package sysboard implements the system clipboard. It uses the native
// clipboard through golang.design/x/clipboard and falls back to
// pbcopy/pbpaste on macOS or xclip/xsel on Linux when the native one
// cannot be initialised (for example in builds without cgo).
package sysboard

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	xclipboard "golang.design/x/clipboard"

	"github.com/yiblet/eqplot/internal/clipboard"
)

// SystemClipboard implements clipboard.Clipboard for the host system
type SystemClipboard struct {
	once      sync.Once
	nativeErr error
}

// New creates a new SystemClipboard instance
func New() *SystemClipboard {
	return &SystemClipboard{}
}

func (s *SystemClipboard) native() bool {
	s.once.Do(func() {
		s.nativeErr = xclipboard.Init()
	})
	return s.nativeErr == nil
}

// IsSupported returns true if clipboard operations are supported on this system
func (s *SystemClipboard) IsSupported() bool {
	if s.native() {
		return true
	}
	_, _, ok := commands()
	return ok
}

// Read implements Clipboard.Read for SystemClipboard
func (s *SystemClipboard) Read() (string, error) {
	if s.native() {
		return string(xclipboard.Read(xclipboard.FmtText)), nil
	}

	read, _, ok := commands()
	if !ok {
		return "", clipboard.ErrUnsupported
	}
	cmd := exec.Command(read[0], read[1:]...)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to run %s: %w", read[0], err)
	}
	return out.String(), nil
}

// Write implements Clipboard.Write for SystemClipboard
func (s *SystemClipboard) Write(text string) error {
	if s.native() {
		xclipboard.Write(xclipboard.FmtText, []byte(text))
		return nil
	}

	_, write, ok := commands()
	if !ok {
		return clipboard.ErrUnsupported
	}
	cmd := exec.Command(write[0], write[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", write[0], err)
	}
	return nil
}

// commands returns the read and write command lines available on this system
func commands() (read, write []string, ok bool) {
	switch runtime.GOOS {
	case "darwin":
		if _, err := exec.LookPath("pbcopy"); err == nil {
			return []string{"pbpaste"}, []string{"pbcopy"}, true
		}
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			return []string{"xclip", "-selection", "clipboard", "-o"},
				[]string{"xclip", "-selection", "clipboard"}, true
		}
		if _, err := exec.LookPath("xsel"); err == nil {
			return []string{"xsel", "--clipboard", "--output"},
				[]string{"xsel", "--clipboard", "--input"}, true
		}
	}
	return nil, nil, false
}
