package exec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Result holds command execution output
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes external audio tools with context support
type Runner struct {
	FluidsynthPath string
	FFmpegPath     string
}

// NewRunner creates a new command runner. Empty paths fall back to the
// tools found on PATH.
func NewRunner(fluidsynthPath, ffmpegPath string) *Runner {
	if fluidsynthPath == "" {
		fluidsynthPath = "fluidsynth"
	}
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Runner{
		FluidsynthPath: fluidsynthPath,
		FFmpegPath:     ffmpegPath,
	}
}

// Fluidsynth runs fluidsynth with the given arguments
func (r *Runner) Fluidsynth(ctx context.Context, args ...string) (*Result, error) {
	return r.execute(ctx, r.FluidsynthPath, args...)
}

// FFmpeg runs ffmpeg with the given arguments
func (r *Runner) FFmpeg(ctx context.Context, args ...string) (*Result, error) {
	return r.execute(ctx, r.FFmpegPath, args...)
}

// execute runs a command and captures output
func (r *Runner) execute(ctx context.Context, name string, args ...string) (*Result, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
	}

	if err != nil {
		return result, fmt.Errorf("command failed: %w", err)
	}

	return result, nil
}

// CheckFluidsynth verifies fluidsynth can be executed
func (r *Runner) CheckFluidsynth(ctx context.Context) error {
	if result, err := r.execute(ctx, r.FluidsynthPath, "--version"); err != nil {
		return fmt.Errorf("fluidsynth not available: %w\nstderr: %s", err, result.Stderr)
	}
	return nil
}

// CheckFFmpeg verifies ffmpeg can be executed
func (r *Runner) CheckFFmpeg(ctx context.Context) error {
	if result, err := r.execute(ctx, r.FFmpegPath, "-version"); err != nil {
		return fmt.Errorf("ffmpeg not available: %w\nstderr: %s", err, result.Stderr)
	}
	return nil
}
