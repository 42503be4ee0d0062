package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Workspace manages temporary files for a single render job
type Workspace struct {
	Dir       string
	CreatedAt time.Time
}

// Create creates a new isolated workspace in the system temp directory
func Create() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "acidgrid-*")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	return &Workspace{
		Dir:       dir,
		CreatedAt: time.Now(),
	}, nil
}

// Path helpers for workspace files
func (w *Workspace) MIDIFile() string { return filepath.Join(w.Dir, "track.mid") }
func (w *Workspace) WAVFile() string  { return filepath.Join(w.Dir, "track.wav") }

// AudioFile returns the path for the final audio file in the given format
func (w *Workspace) AudioFile(format string) string {
	return filepath.Join(w.Dir, "track."+format)
}

// Cleanup removes the workspace directory and all contents
func (w *Workspace) Cleanup() error {
	return os.RemoveAll(w.Dir)
}

// CopyOut copies a workspace file to a destination outside the workspace
func (w *Workspace) CopyOut(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read workspace file: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	return nil
}
