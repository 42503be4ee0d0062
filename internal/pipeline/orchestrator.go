// Package pipeline coordinates one generation run: plan the song
// structure, run the five generators, write the MIDI file and
// optionally render audio. The CLI and the web server both drive it.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yrbane/acidgrid/internal/cache"
	"github.com/yrbane/acidgrid/internal/engine"
	apperrors "github.com/yrbane/acidgrid/internal/errors"
	"github.com/yrbane/acidgrid/internal/exec"
	"github.com/yrbane/acidgrid/internal/midifile"
	"github.com/yrbane/acidgrid/internal/progress"
	"github.com/yrbane/acidgrid/internal/render"
	"github.com/yrbane/acidgrid/internal/song"
	"github.com/yrbane/acidgrid/internal/style"
	"github.com/yrbane/acidgrid/internal/timesig"
	"github.com/yrbane/acidgrid/internal/trackname"
	"github.com/yrbane/acidgrid/internal/workspace"
)

// Config holds generation configuration
type Config struct {
	Style         string
	Measures      int
	Tempo         int      // 0 uses the style default
	Swing         *float64 // nil uses the style default
	TimeSignature string
	Seed          int64
	OutputDir     string
	Name          string // empty draws a style-appropriate name

	ExportAudio bool
	AudioFormat string
	SoundFont   string
	Gain        float64
	SampleRate  int
	UseCache    bool // use render cache for audio export
}

// NewSeed derives a unique seed from the clock, used when no explicit
// seed is given.
func NewSeed() int64 {
	return time.Now().UnixMicro()
}

// DefaultConfig returns default generation configuration
func DefaultConfig() Config {
	return Config{
		Style:         style.Techno,
		Measures:      192,
		TimeSignature: "4/4",
		OutputDir:     "output",
		AudioFormat:   string(render.FormatWAV),
		Gain:          render.DefaultGain,
		SampleRate:    render.DefaultSampleRate,
		UseCache:      true,
	}
}

// Result contains all generation outputs
type Result struct {
	Style         style.Style
	Tempo         int
	Swing         float64
	Seed          int64
	TrackName     string
	TimeSignature timesig.TimeSignature
	Sections      []song.Section
	EventCounts   map[string]int
	TotalEvents   int
	MIDIPath      string
	AudioPath     string // empty when export was skipped or failed
	AudioCached   bool
}

// SectionNames returns the section plan as a comma-joined list.
func (r *Result) SectionNames() string {
	names := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}

// Orchestrator coordinates the full generation pipeline
type Orchestrator struct {
	exporter *render.Exporter
	progress *progress.Reporter
}

// NewOrchestrator creates a new pipeline orchestrator
func NewOrchestrator(out io.Writer, verbose bool) *Orchestrator {
	runner := exec.NewRunner("", "")
	return &Orchestrator{
		exporter: render.NewExporter(runner),
		progress: progress.NewReporter(out, verbose),
	}
}

// Execute runs the full pipeline
func (o *Orchestrator) Execute(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Measures <= 0 {
		return nil, fmt.Errorf("measures must be positive, got %d", cfg.Measures)
	}

	meter := timesig.Common
	if cfg.TimeSignature != "" {
		var err error
		meter, err = timesig.Parse(cfg.TimeSignature)
		if err != nil {
			return nil, err
		}
	}

	format := render.FormatWAV
	if cfg.ExportAudio && cfg.AudioFormat != "" {
		var err error
		format, err = render.ParseFormat(cfg.AudioFormat)
		if err != nil {
			return nil, err
		}
	}

	// Stage 1: Plan the song structure
	o.progress.StartStage(progress.StagePlan)
	st := style.Get(cfg.Style)
	tempo, honored := st.ResolveTempo(cfg.Tempo)
	if !honored {
		o.progress.Warning("Tempo %d is outside the %s range %d-%d, using %d",
			cfg.Tempo, st.Name, st.TempoMin, st.TempoMax, tempo)
	}
	swing := st.DefaultSwing
	if cfg.Swing != nil {
		swing = *cfg.Swing
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	structure := song.New(cfg.Measures, st, rng)

	name := cfg.Name
	if name == "" {
		name = trackname.New(rng).Generate(st.Name)
	}

	result := &Result{
		Style:         st,
		Tempo:         tempo,
		Swing:         swing,
		Seed:          cfg.Seed,
		TrackName:     name,
		TimeSignature: meter,
		Sections:      structure.Sections,
	}
	o.progress.StageComplete("Track: %s", name)
	o.progress.StageComplete("Sections: %s", result.SectionNames())
	o.progress.Update("Key: %s, mood: %s", structure.StartKey, structure.Mood)

	// Stage 2: Run the five generators
	o.progress.StartStage(progress.StageGenerate)
	o.progress.Update("Generating %d measures at %d BPM", cfg.Measures, tempo)

	drums := engine.NewRhythm(structure, st, meter, rng).Generate(cfg.Measures, tempo, swing)
	bass := engine.NewBassline(structure, st, rng).Generate(cfg.Measures, tempo)
	sub := engine.NewSubBass(structure, meter, rng).Generate(cfg.Measures, tempo)
	accomp := engine.NewAccompaniment(structure, st, rng).Generate(cfg.Measures, tempo)
	lead := engine.NewLead(structure, rng).Generate(cfg.Measures, tempo)

	result.EventCounts = map[string]int{
		"Rhythm":              len(drums),
		"Bassline":            len(bass),
		"Sub Bass":            len(sub),
		"Synth Accompaniment": len(accomp),
		"Synth Lead":          len(lead),
	}
	for _, n := range result.EventCounts {
		result.TotalEvents += n
	}
	o.progress.StageComplete("Generated %d events across 5 tracks", result.TotalEvents)

	// Stage 3: Write the MIDI file
	o.progress.StartStage(progress.StageWrite)
	composer := midifile.NewComposer(tempo, meter)
	composer.AddDrumTrack("Rhythm", drums)
	composer.AddMelodicTrack("Bassline", midifile.ChannelBassline, midifile.ProgramBassline, bass)
	composer.AddPairedTrack("Sub Bass", midifile.ChannelSubBass, midifile.ProgramSubBass, sub)
	composer.AddMelodicTrack("Synth Accompaniment", midifile.ChannelAccomp, midifile.ProgramAccomp, accomp)
	composer.AddMelodicTrack("Synth Lead", midifile.ChannelLead, midifile.ProgramLead, lead)

	var buf bytes.Buffer
	if err := composer.Write(&buf); err != nil {
		return nil, fmt.Errorf("compose midi: %w", err)
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = "output"
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	result.MIDIPath = filepath.Join(outDir, name+".mid")
	if err := os.WriteFile(result.MIDIPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("write midi: %w", err)
	}
	o.progress.StageComplete("Track saved: %s", result.MIDIPath)

	// Stage 4: Render audio (optional). A failed render keeps the MIDI
	// result, so errors here become warnings.
	if cfg.ExportAudio {
		o.progress.StartStage(progress.StageRender)
		audioPath, cached, err := o.renderAudio(ctx, cfg, format, buf.Bytes(), result.MIDIPath, outDir, name)
		if err != nil {
			o.progress.Warning("Audio export failed: %v", err)
		} else {
			result.AudioPath = audioPath
			result.AudioCached = cached
			if cached {
				o.progress.StageComplete("Audio restored from cache: %s", audioPath)
			} else {
				o.progress.StageComplete("Audio exported: %s", audioPath)
			}
		}
	}

	return result, nil
}

// renderAudio synthesizes and encodes the written MIDI file, consulting
// the render cache when enabled. Returns the final audio path and
// whether it came from cache.
func (o *Orchestrator) renderAudio(ctx context.Context, cfg Config, format render.Format, midiData []byte, midiPath, outDir, name string) (string, bool, error) {
	soundFont, err := render.FindSoundFont(cfg.SoundFont)
	if err != nil {
		return "", false, err
	}

	opts := render.Options{SoundFont: soundFont, Gain: cfg.Gain, SampleRate: cfg.SampleRate}
	if opts.Gain <= 0 {
		opts.Gain = render.DefaultGain
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = render.DefaultSampleRate
	}

	audioPath := filepath.Join(outDir, name+"."+string(format))

	var rc *cache.RenderCache
	var key string
	if cfg.UseCache {
		rc, err = cache.NewRenderCache()
		if err != nil {
			o.progress.Warning("Cache init failed: %v", err)
			rc = nil
		} else {
			key = cache.Key(midiData, soundFont, string(format), opts.Gain, opts.SampleRate)
			if cached, ok := rc.Get(key, string(format)); ok {
				if err := copyFile(cached.AudioPath, audioPath); err == nil {
					return audioPath, true, nil
				}
				o.progress.Warning("Cache copy failed, re-rendering")
			}
		}
	}

	ws, err := workspace.Create()
	if err != nil {
		return "", false, err
	}
	defer ws.Cleanup()

	wavPath := ws.WAVFile()
	if err := o.exporter.Synthesize(ctx, midiPath, wavPath, opts); err != nil {
		return "", false, err
	}

	rendered := wavPath
	cacheable := true
	if format != render.FormatWAV {
		encoded := ws.AudioFile(string(format))
		if err := o.exporter.Encode(ctx, wavPath, encoded, format); err != nil {
			var perr *apperrors.ProcessError
			recoverable := errors.Is(err, apperrors.ErrFFmpegNotFound) ||
				(errors.As(err, &perr) && perr.IsRecoverable())
			if !recoverable {
				return "", false, err
			}
			// The WAV is already rendered, keep it instead of failing.
			o.progress.Warning("Encoding to %s failed, keeping WAV: %v", format, err)
			audioPath = filepath.Join(outDir, name+".wav")
			cacheable = false
		} else {
			rendered = encoded
		}
	}

	if err := ws.CopyOut(rendered, audioPath); err != nil {
		return "", false, err
	}

	if rc != nil && cacheable {
		if _, err := rc.Put(key, string(format), rendered); err != nil {
			o.progress.Warning("Cache save failed: %v", err)
		}
	}
	return audioPath, false, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
