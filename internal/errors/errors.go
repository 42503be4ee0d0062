package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// Sentinel errors for expected failure modes
var (
	ErrFluidSynthNotFound   = errors.New("fluidsynth not installed")
	ErrFFmpegNotFound       = errors.New("ffmpeg not installed")
	ErrSoundFontNotFound    = errors.New("no soundfont found")
	ErrUnsupportedFormat    = errors.New("unsupported audio format")
	ErrRenderFailed         = errors.New("audio render failed")
	ErrInvalidTimeSignature = errors.New("invalid time signature")
	ErrPresetNotFound       = errors.New("preset not found")
	ErrPresetProtected      = errors.New("builtin presets cannot be changed")
)

// ProcessError represents a failure in an external process
type ProcessError struct {
	Tool     string // "fluidsynth", "ffmpeg"
	Stage    string // "synthesize", "encode"
	ExitCode int
	Stderr   string
	Cause    error
}

func (e *ProcessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed at %s (exit %d): %s", e.Tool, e.Stage, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s failed at %s (exit %d)", e.Tool, e.Stage, e.ExitCode)
}

func (e *ProcessError) Unwrap() error {
	return e.Cause
}

// IsRecoverable returns true if a fallback strategy exists. A failed
// encode still leaves the intermediate WAV usable.
func (e *ProcessError) IsRecoverable() bool {
	return e.Tool == "ffmpeg" && e.Stage == "encode"
}

// NewProcessError creates a ProcessError
func NewProcessError(tool, stage string, exitCode int, stderr string, cause error) *ProcessError {
	return &ProcessError{
		Tool:     tool,
		Stage:    stage,
		ExitCode: exitCode,
		Stderr:   stderr,
		Cause:    cause,
	}
}

// InstallHint returns platform guidance for resolving a missing tool.
func InstallHint(tool string) string {
	switch tool {
	case "fluidsynth":
		switch runtime.GOOS {
		case "linux":
			return "Install FluidSynth: sudo apt install fluidsynth fluid-soundfont-gm (Arch: sudo pacman -S fluidsynth soundfont-fluid)"
		case "darwin":
			return "Install FluidSynth: brew install fluidsynth"
		case "windows":
			return "Install FluidSynth from https://github.com/FluidSynth/fluidsynth/releases and add it to PATH"
		}
		return "Install FluidSynth from https://www.fluidsynth.org"
	case "ffmpeg":
		switch runtime.GOOS {
		case "linux":
			return "Install ffmpeg for MP3/OGG/FLAC export: sudo apt install ffmpeg (Arch: sudo pacman -S ffmpeg)"
		case "darwin":
			return "Install ffmpeg for MP3/OGG/FLAC export: brew install ffmpeg"
		case "windows":
			return "Install ffmpeg from https://ffmpeg.org/ and add it to PATH"
		}
		return "Install ffmpeg from https://ffmpeg.org/"
	case "soundfont":
		return "No SoundFont found. Pass --soundfont /path/to/soundfont.sf2 or install a General MIDI soundfont (e.g. fluid-soundfont-gm)"
	}
	return ""
}
