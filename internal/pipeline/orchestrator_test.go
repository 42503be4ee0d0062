package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/yrbane/acidgrid/internal/errors"
)

func testConfig(dir string) Config {
	cfg := DefaultConfig()
	cfg.Style = "techno"
	cfg.Measures = 32
	cfg.Seed = 42
	cfg.OutputDir = dir
	return cfg
}

func TestExecuteWritesMIDI(t *testing.T) {
	o := NewOrchestrator(io.Discard, false)
	result, err := o.Execute(context.Background(), testConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if result.TrackName == "" {
		t.Error("no track name generated")
	}
	if result.Tempo != 128 {
		t.Errorf("tempo = %d, want techno default 128", result.Tempo)
	}
	if len(result.Sections) == 0 {
		t.Error("no sections planned")
	}
	if len(result.EventCounts) != 5 {
		t.Errorf("got %d track counts, want 5", len(result.EventCounts))
	}
	if result.EventCounts["Rhythm"] == 0 {
		t.Error("rhythm track is empty")
	}
	if result.AudioPath != "" {
		t.Errorf("audio path set without export: %q", result.AudioPath)
	}

	data, err := os.ReadFile(result.MIDIPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("MThd")) {
		t.Error("output is not a standard MIDI file")
	}
}

func TestExecuteDeterministicForSeed(t *testing.T) {
	o := NewOrchestrator(io.Discard, false)

	first, err := o.Execute(context.Background(), testConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := o.Execute(context.Background(), testConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.TrackName != second.TrackName {
		t.Errorf("track names differ: %q vs %q", first.TrackName, second.TrackName)
	}

	a, err := os.ReadFile(first.MIDIPath)
	if err != nil {
		t.Fatalf("read first: %v", err)
	}
	b, err := os.ReadFile(second.MIDIPath)
	if err != nil {
		t.Fatalf("read second: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("same seed produced different MIDI bytes")
	}
}

func TestExecuteSeedsDiffer(t *testing.T) {
	o := NewOrchestrator(io.Discard, false)

	cfg := testConfig(t.TempDir())
	first, err := o.Execute(context.Background(), cfg)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	cfg2 := testConfig(t.TempDir())
	cfg2.Seed = 43
	second, err := o.Execute(context.Background(), cfg2)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	a, _ := os.ReadFile(first.MIDIPath)
	b, _ := os.ReadFile(second.MIDIPath)
	if bytes.Equal(a, b) {
		t.Error("different seeds produced identical MIDI bytes")
	}
}

func TestExecuteHonorsExplicitName(t *testing.T) {
	o := NewOrchestrator(io.Discard, false)
	cfg := testConfig(t.TempDir())
	cfg.Name = "Warehouse Test"

	result, err := o.Execute(context.Background(), cfg)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.TrackName != "Warehouse Test" {
		t.Errorf("track name = %q", result.TrackName)
	}
	if filepath.Base(result.MIDIPath) != "Warehouse Test.mid" {
		t.Errorf("midi path = %q", result.MIDIPath)
	}
}

func TestExecuteRejectsBadInput(t *testing.T) {
	o := NewOrchestrator(io.Discard, false)

	cfg := testConfig(t.TempDir())
	cfg.Measures = 0
	if _, err := o.Execute(context.Background(), cfg); err == nil {
		t.Error("zero measures should fail")
	}

	cfg = testConfig(t.TempDir())
	cfg.TimeSignature = "9/5"
	_, err := o.Execute(context.Background(), cfg)
	if !errors.Is(err, apperrors.ErrInvalidTimeSignature) {
		t.Errorf("got %v, want ErrInvalidTimeSignature", err)
	}

	cfg = testConfig(t.TempDir())
	cfg.ExportAudio = true
	cfg.AudioFormat = "aiff"
	_, err = o.Execute(context.Background(), cfg)
	if !errors.Is(err, apperrors.ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestExecuteOutOfRangeTempoFallsBack(t *testing.T) {
	o := NewOrchestrator(io.Discard, false)
	cfg := testConfig(t.TempDir())
	cfg.Tempo = 999

	result, err := o.Execute(context.Background(), cfg)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Tempo != 128 {
		t.Errorf("tempo = %d, want style default 128", result.Tempo)
	}
}
