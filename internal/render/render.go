// Package render synthesizes generated MIDI files to audio with
// fluidsynth and encodes compressed formats with ffmpeg.
package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	osexec "os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/yrbane/acidgrid/internal/errors"
	"github.com/yrbane/acidgrid/internal/exec"
)

const (
	// DefaultGain is the fluidsynth master gain (0.0-10.0).
	DefaultGain = 0.5
	// DefaultSampleRate is the output sample rate in Hz.
	DefaultSampleRate = 44100

	synthTimeout  = 5 * time.Minute
	encodeTimeout = 60 * time.Second
	probeTimeout  = 5 * time.Second
)

// Format is a supported output audio format.
type Format string

const (
	FormatWAV  Format = "wav"
	FormatMP3  Format = "mp3"
	FormatOGG  Format = "ogg"
	FormatFLAC Format = "flac"
)

// codecArgs maps each compressed format to its ffmpeg encoder settings.
var codecArgs = map[Format][]string{
	FormatMP3:  {"libmp3lame", "-b:a", "320k"},
	FormatOGG:  {"libvorbis", "-q:a", "8"},
	FormatFLAC: {"flac", "-compression_level", "8"},
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatWAV, FormatMP3, FormatOGG, FormatFLAC:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (use wav, mp3, ogg or flac)", apperrors.ErrUnsupportedFormat, s)
	}
}

// Formats returns the supported format names.
func Formats() []string {
	return []string{"wav", "mp3", "ogg", "flac"}
}

// soundFontCandidates returns the platform paths where a General MIDI
// soundfont is commonly installed.
func soundFontCandidates() []string {
	switch runtime.GOOS {
	case "linux":
		return []string{
			"/usr/share/soundfonts/FluidR3_GM.sf2",
			"/usr/share/soundfonts/default.sf2",
			"/usr/share/sounds/sf2/FluidR3_GM.sf2",
			"/usr/share/sounds/sf2/default.sf2",
		}
	case "darwin":
		return []string{
			"/usr/local/share/soundfonts/FluidR3_GM.sf2",
			"/System/Library/Components/CoreAudio.component/Contents/Resources/gs_instruments.dls",
		}
	case "windows":
		return []string{
			`C:\soundfonts\FluidR3_GM.sf2`,
			`C:\Windows\System32\drivers\gm.dls`,
		}
	}
	return nil
}

// FindSoundFont resolves the soundfont to render with. An explicit path
// must exist; otherwise the platform defaults are probed in order.
func FindSoundFont(override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("%w: %s", apperrors.ErrSoundFontNotFound, override)
		}
		return override, nil
	}
	for _, path := range soundFontCandidates() {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", apperrors.ErrSoundFontNotFound, apperrors.InstallHint("soundfont"))
}

// Options control synthesis quality.
type Options struct {
	SoundFont  string  // explicit .sf2 path, empty for the platform default
	Gain       float64 // fluidsynth master gain 0.0-10.0
	SampleRate int     // output sample rate in Hz
}

// DefaultOptions returns the standard render settings.
func DefaultOptions() Options {
	return Options{Gain: DefaultGain, SampleRate: DefaultSampleRate}
}

// Exporter renders MIDI files to audio using external tools.
type Exporter struct {
	runner *exec.Runner
}

// NewExporter creates an exporter over the given runner.
func NewExporter(runner *exec.Runner) *Exporter {
	return &Exporter{runner: runner}
}

// synthArgs builds the fluidsynth invocation for WAV rendering.
func synthArgs(midiPath, wavPath, soundFont string, gain float64, sampleRate int) []string {
	return []string{
		"-ni",
		"-g", strconv.FormatFloat(gain, 'g', -1, 64),
		"-r", strconv.Itoa(sampleRate),
		"-F", wavPath,
		soundFont,
		midiPath,
	}
}

// encodeArgs builds the ffmpeg invocation for one compressed format.
func encodeArgs(wavPath, outPath string, format Format) []string {
	args := []string{"-i", wavPath, "-y", "-codec:a"}
	args = append(args, codecArgs[format]...)
	return append(args, outPath)
}

// Synthesize renders a MIDI file to WAV with fluidsynth.
func (e *Exporter) Synthesize(ctx context.Context, midiPath, wavPath string, opts Options) error {
	soundFont, err := FindSoundFont(opts.SoundFont)
	if err != nil {
		return err
	}
	if opts.Gain <= 0 {
		opts.Gain = DefaultGain
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}

	ctx, cancel := context.WithTimeout(ctx, synthTimeout)
	defer cancel()

	result, err := e.runner.Fluidsynth(ctx, synthArgs(midiPath, wavPath, soundFont, opts.Gain, opts.SampleRate)...)
	if err != nil {
		if errors.Is(err, osexec.ErrNotFound) {
			return fmt.Errorf("%w: %s", apperrors.ErrFluidSynthNotFound, apperrors.InstallHint("fluidsynth"))
		}
		return apperrors.NewProcessError("fluidsynth", "synthesize", result.ExitCode, result.Stderr, err)
	}
	return nil
}

// Encode converts a WAV file to a compressed format with ffmpeg.
func (e *Exporter) Encode(ctx context.Context, wavPath, outPath string, format Format) error {
	if _, ok := codecArgs[format]; !ok {
		return fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, format)
	}

	ctx, cancel := context.WithTimeout(ctx, encodeTimeout)
	defer cancel()

	result, err := e.runner.FFmpeg(ctx, encodeArgs(wavPath, outPath, format)...)
	if err != nil {
		if errors.Is(err, osexec.ErrNotFound) {
			return fmt.Errorf("%w: %s", apperrors.ErrFFmpegNotFound, apperrors.InstallHint("ffmpeg"))
		}
		return apperrors.NewProcessError("ffmpeg", "encode", result.ExitCode, result.Stderr, err)
	}
	return nil
}

// Export renders a MIDI file to outPath in the requested format.
// Compressed formats go through an intermediate WAV next to the output,
// removed after encoding.
func (e *Exporter) Export(ctx context.Context, midiPath, outPath string, format Format, opts Options) error {
	if format == FormatWAV {
		if err := e.Synthesize(ctx, midiPath, outPath, opts); err != nil {
			return wrapRender(err)
		}
		return nil
	}
	if _, ok := codecArgs[format]; !ok {
		return fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, format)
	}

	tempWAV := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".tmp.wav"
	defer os.Remove(tempWAV)

	if err := e.Synthesize(ctx, midiPath, tempWAV, opts); err != nil {
		return wrapRender(err)
	}
	if err := e.Encode(ctx, tempWAV, outPath, format); err != nil {
		return wrapRender(err)
	}
	return nil
}

// wrapRender marks tool failures as render failures. Missing-tool and
// missing-soundfont sentinels pass through so callers can show install
// hints.
func wrapRender(err error) error {
	if errors.Is(err, apperrors.ErrFluidSynthNotFound) ||
		errors.Is(err, apperrors.ErrFFmpegNotFound) ||
		errors.Is(err, apperrors.ErrSoundFontNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", apperrors.ErrRenderFailed, err)
}

// ToolStatus reports the availability of the external render toolchain.
type ToolStatus struct {
	FluidSynth        bool
	FluidSynthVersion string
	FFmpeg            bool
	FFmpegVersion     string
	SoundFont         string
}

// Ready reports whether WAV rendering can work at all.
func (s ToolStatus) Ready() bool {
	return s.FluidSynth && s.SoundFont != ""
}

// Doctor probes fluidsynth, ffmpeg and the soundfont search paths.
func (e *Exporter) Doctor(ctx context.Context, soundFontOverride string) ToolStatus {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var st ToolStatus
	if result, err := e.runner.Fluidsynth(ctx, "--version"); err == nil {
		st.FluidSynth = true
		st.FluidSynthVersion = firstLine(result.Stdout)
	}
	if result, err := e.runner.FFmpeg(ctx, "-version"); err == nil {
		st.FFmpeg = true
		st.FFmpegVersion = firstLine(result.Stdout)
	}
	if path, err := FindSoundFont(soundFontOverride); err == nil {
		st.SoundFont = path
	}
	return st
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
