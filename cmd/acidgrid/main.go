package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	apperrors "github.com/yrbane/acidgrid/internal/errors"
	"github.com/yrbane/acidgrid/internal/exec"
	"github.com/yrbane/acidgrid/internal/pipeline"
	"github.com/yrbane/acidgrid/internal/preset"
	"github.com/yrbane/acidgrid/internal/render"
	"github.com/yrbane/acidgrid/internal/server"
	"github.com/yrbane/acidgrid/internal/style"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "acidgrid",
	Short: "Generate multi-track electronic music as MIDI",
	Long: `Acidgrid generates complete electronic tracks as standard MIDI files.

Each track carries five instruments: rhythm, bassline, sub bass, synth
accompaniment and synth lead, arranged over a style-specific song
structure from intro to outro.`,
	Version: version,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new track",
	Long: `Generate a multi-track MIDI file in the chosen style.

Examples:
  acidgrid generate
  acidgrid generate --style jungle --measures 64
  acidgrid generate -s house --tempo 124 --seed 42
  acidgrid generate --preset berlin-warehouse --export-audio --audio-format mp3`,
	Aliases: []string{"gen"},
	RunE:    runGenerate,
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List available music styles",
	RunE:  runStyles,
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage generation presets",
	Long: `List, inspect, save and delete generation presets.

Builtin presets cover common club sounds; custom presets are stored as
YAML files under ~/.acidgrid/presets.

Subcommands:
  list      List all presets
  show      Show one preset in detail
  save      Save a custom preset
  delete    Delete a custom preset`,
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all presets",
	RunE:  runPresetsList,
}

var presetsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one preset in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsShow,
}

var presetsSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a custom preset",
	Long: `Save a custom preset under ~/.acidgrid/presets.

Examples:
  acidgrid presets save my-club-night --style techno --tempo 130 --measures 256
  acidgrid presets save late-set --style house --swing 0.25 -d "Closing set groove"`,
	Args: cobra.ExactArgs(1),
	RunE: runPresetsSave,
}

var presetsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a custom preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsDelete,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface",
	Long: `Start the web interface for generating tracks from the browser.

Example:
  acidgrid serve --port 8080`,
	RunE: runServe,
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the audio export toolchain",
	Long: `Check that fluidsynth, a General MIDI soundfont and ffmpeg are
available for audio export. Tracks can always be generated as MIDI;
the toolchain is only needed for --export-audio.`,
	RunE: runDoctor,
}

var (
	// generate flags
	styleName     string
	measures      int
	tempoBPM      int
	swing         float64
	timeSignature string
	seed          int64
	outputDir     string
	trackName     string
	presetName    string
	exportAudio   bool
	audioFormat   string
	soundFont     string
	gain          float64
	sampleRate    int
	noCache       bool
	verbose       bool

	// serve flags
	port int

	// preset save flags
	presetDescription string
	presetOverwrite   bool
)

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(stylesCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(doctorCmd)

	// Presets subcommands
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsShowCmd)
	presetsCmd.AddCommand(presetsSaveCmd)
	presetsCmd.AddCommand(presetsDeleteCmd)

	// Generate command flags
	generateCmd.Flags().IntVarP(&measures, "measures", "m", 192, "Number of measures to generate")
	generateCmd.Flags().StringVarP(&styleName, "style", "s", style.Techno, "Music style (see 'acidgrid styles')")
	generateCmd.Flags().IntVarP(&tempoBPM, "tempo", "t", 0, "Tempo in BPM (default: style default)")
	generateCmd.Flags().Float64Var(&swing, "swing", 0, "Swing amount 0.0-1.0 (default: style default)")
	generateCmd.Flags().StringVar(&timeSignature, "time-signature", "4/4", "Time signature, e.g. 4/4 or 7/8")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for reproducible generation")
	generateCmd.Flags().StringVarP(&outputDir, "output", "o", "output", "Output directory for MIDI files")
	generateCmd.Flags().StringVarP(&trackName, "name", "n", "", "Track name (default: a generated name)")
	generateCmd.Flags().StringVarP(&presetName, "preset", "p", "", "Start from a saved preset")
	generateCmd.Flags().BoolVar(&exportAudio, "export-audio", false, "Render the track to audio after writing MIDI")
	generateCmd.Flags().StringVar(&audioFormat, "audio-format", "wav", "Audio export format (wav, mp3, ogg, flac)")
	generateCmd.Flags().StringVar(&soundFont, "soundfont", "", "SoundFont for rendering (default: auto-detect)")
	generateCmd.Flags().Float64Var(&gain, "gain", render.DefaultGain, "FluidSynth master gain")
	generateCmd.Flags().IntVar(&sampleRate, "sample-rate", render.DefaultSampleRate, "Audio sample rate in Hz")
	generateCmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the audio render cache")
	generateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed progress")

	// Serve flags
	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")

	// Preset save flags
	presetsSaveCmd.Flags().StringVar(&styleName, "style", style.Techno, "Music style")
	presetsSaveCmd.Flags().IntVar(&tempoBPM, "tempo", 0, "Tempo in BPM (0 = style default)")
	presetsSaveCmd.Flags().IntVar(&measures, "measures", preset.DefaultMeasures, "Number of measures")
	presetsSaveCmd.Flags().Float64Var(&swing, "swing", 0, "Swing amount 0.0-1.0")
	presetsSaveCmd.Flags().StringVarP(&presetDescription, "description", "d", "", "Preset description")
	presetsSaveCmd.Flags().BoolVar(&presetOverwrite, "overwrite", false, "Replace an existing custom preset")

	// Doctor flags
	doctorCmd.Flags().StringVar(&soundFont, "soundfont", "", "SoundFont to check (default: auto-detect)")
}

// Listing styles shared by the styles and presets commands.
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f"))
	nameStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)

// trackOrder is the presentation order for per-track summaries.
var trackOrder = []string{"Rhythm", "Bassline", "Sub Bass", "Synth Accompaniment", "Synth Lead"}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := pipeline.DefaultConfig()

	// Preset values apply first, explicitly set flags override them below.
	if presetName != "" {
		store, err := openPresetStore()
		if err != nil {
			return err
		}
		p, err := store.Get(presetName)
		if err != nil {
			return err
		}
		cfg.Style = p.Style
		cfg.Measures = p.Measures
		cfg.Tempo = p.Tempo
		cfg.Swing = p.Swing
		if p.Seed != nil {
			cfg.Seed = *p.Seed
		}
		fmt.Printf("Preset: %s - %s\n", p.Name, p.Description)
	}

	flags := cmd.Flags()
	if flags.Changed("style") {
		cfg.Style = styleName
	}
	if flags.Changed("measures") {
		cfg.Measures = measures
	}
	if flags.Changed("tempo") {
		cfg.Tempo = tempoBPM
	}
	if flags.Changed("swing") {
		if swing < 0 || swing > 1 {
			return fmt.Errorf("invalid swing value: %g (must be between 0.0 and 1.0)", swing)
		}
		s := swing
		cfg.Swing = &s
	}

	if !validStyle(cfg.Style) {
		return fmt.Errorf("unknown style: %q (available: %s)", cfg.Style, strings.Join(style.Available(), ", "))
	}
	if cfg.Measures <= 0 {
		return fmt.Errorf("invalid measures value: %d (must be positive)", cfg.Measures)
	}

	cfg.TimeSignature = timeSignature
	cfg.OutputDir = outputDir
	cfg.Name = trackName
	cfg.ExportAudio = exportAudio
	cfg.AudioFormat = audioFormat
	cfg.SoundFont = soundFont
	cfg.Gain = gain
	cfg.SampleRate = sampleRate
	cfg.UseCache = !noCache

	st := style.Get(cfg.Style)
	fmt.Printf("Music style: %s - %s\n", st.Name, st.Description)
	tempo, _ := st.ResolveTempo(cfg.Tempo)
	fmt.Printf("Tempo: %d BPM (range for %s: %d-%d)\n", tempo, st.Name, st.TempoMin, st.TempoMax)

	if flags.Changed("seed") {
		cfg.Seed = seed
		fmt.Printf("Using seed: %d\n", cfg.Seed)
	} else if cfg.Seed != 0 {
		fmt.Printf("Using seed: %d\n", cfg.Seed)
	} else {
		cfg.Seed = pipeline.NewSeed()
		fmt.Printf("Using unique seed: %d\n", cfg.Seed)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, cleaning up...")
		cancel()
	}()

	orch := pipeline.NewOrchestrator(os.Stdout, verbose)
	result, err := orch.Execute(ctx, cfg)
	if err != nil {
		return err
	}

	for _, name := range trackOrder {
		fmt.Printf("  %-19s  %5d events\n", name, result.EventCounts[name])
	}
	fmt.Println("Generation complete!")
	return nil
}

func runStyles(cmd *cobra.Command, args []string) error {
	fmt.Println(headerStyle.Render("Available Styles"))
	fmt.Println()
	for _, name := range style.Available() {
		st := style.Get(name)
		tempoRange := fmt.Sprintf("%d-%d BPM", st.TempoMin, st.TempoMax)
		fmt.Printf("  %s  %s  %s\n",
			nameStyle.Render(fmt.Sprintf("%-11s", name)),
			dimStyle.Render(fmt.Sprintf("%11s", tempoRange)),
			st.Description)
	}
	return nil
}

func runPresetsList(cmd *cobra.Command, args []string) error {
	store, err := openPresetStore()
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("Built-in Presets"))
	fmt.Println()
	printPresetHeader()
	for _, name := range preset.BuiltinNames() {
		if p, ok := preset.Builtin(name); ok {
			printPresetRow(p)
		}
	}
	fmt.Println()

	fmt.Println(headerStyle.Render("Custom Presets"))
	fmt.Println()
	custom, err := store.CustomNames()
	if err != nil {
		return err
	}
	if len(custom) == 0 {
		fmt.Println(dimStyle.Render("No custom presets found. Create one with 'acidgrid presets save'."))
		return nil
	}
	printPresetHeader()
	for _, name := range custom {
		p, err := store.Get(name)
		if err != nil {
			continue
		}
		printPresetRow(p)
	}
	return nil
}

func printPresetHeader() {
	fmt.Println(dimStyle.Render(fmt.Sprintf("  %-20s %-10s %8s %9s  %s",
		"NAME", "STYLE", "BPM", "MEASURES", "DESCRIPTION")))
}

func printPresetRow(p preset.Preset) {
	bpm := "default"
	if p.Tempo > 0 {
		bpm = strconv.Itoa(p.Tempo)
	}
	fmt.Printf("  %s %-10s %8s %9d  %s\n",
		nameStyle.Render(fmt.Sprintf("%-20s", p.Name)),
		p.Style, bpm, p.Measures,
		dimStyle.Render(p.Description))
}

func runPresetsShow(cmd *cobra.Command, args []string) error {
	store, err := openPresetStore()
	if err != nil {
		return err
	}
	p, err := store.Get(args[0])
	if err != nil {
		return err
	}

	kind := "custom"
	if preset.IsBuiltin(p.Name) {
		kind = "builtin"
	}
	fmt.Printf("%s %s\n", headerStyle.Render("Preset: "+p.Name), dimStyle.Render("("+kind+")"))
	if p.Description != "" {
		fmt.Println(p.Description)
	}
	fmt.Println()
	fmt.Printf("  Style:    %s\n", p.Style)
	if p.Tempo > 0 {
		fmt.Printf("  Tempo:    %d BPM\n", p.Tempo)
	} else {
		fmt.Println("  Tempo:    style default")
	}
	fmt.Printf("  Measures: %d\n", p.Measures)
	if p.Swing != nil {
		fmt.Printf("  Swing:    %.2f\n", *p.Swing)
	} else {
		fmt.Println("  Swing:    style default")
	}
	if p.Seed != nil {
		fmt.Printf("  Seed:     %d\n", *p.Seed)
	} else {
		fmt.Println("  Seed:     random")
	}
	if kind == "custom" {
		dir, err := preset.DefaultDir()
		if err == nil {
			fmt.Printf("\nLocation: %s\n", filepath.Join(dir, p.Name+".yaml"))
		}
	}
	return nil
}

func runPresetsSave(cmd *cobra.Command, args []string) error {
	if !validStyle(styleName) {
		return fmt.Errorf("unknown style: %q (available: %s)", styleName, strings.Join(style.Available(), ", "))
	}
	if measures <= 0 {
		return fmt.Errorf("invalid measures value: %d (must be positive)", measures)
	}

	p := preset.Preset{
		Name:        args[0],
		Description: presetDescription,
		Style:       styleName,
		Measures:    measures,
	}
	if cmd.Flags().Changed("tempo") {
		p.Tempo = tempoBPM
	}
	if cmd.Flags().Changed("swing") {
		if swing < 0 || swing > 1 {
			return fmt.Errorf("invalid swing value: %g (must be between 0.0 and 1.0)", swing)
		}
		s := swing
		p.Swing = &s
	}

	store, err := openPresetStore()
	if err != nil {
		return err
	}
	if err := store.Save(p, presetOverwrite); err != nil {
		return err
	}
	fmt.Printf("Preset saved: %s\n", p.Name)
	return nil
}

func runPresetsDelete(cmd *cobra.Command, args []string) error {
	store, err := openPresetStore()
	if err != nil {
		return err
	}
	if err := store.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("Preset deleted: %s\n", args[0])
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.New(server.Config{Port: port})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	return srv.Run()
}

func runDoctor(cmd *cobra.Command, args []string) error {
	exporter := render.NewExporter(exec.NewRunner("", ""))
	status := exporter.Doctor(context.Background(), soundFont)

	fmt.Println("Audio Export Status:")
	fmt.Println(strings.Repeat("=", 50))

	if status.FluidSynth {
		fmt.Printf("✅ FluidSynth: %s\n", orUnknown(status.FluidSynthVersion))
	} else {
		fmt.Println("❌ FluidSynth: Not installed")
		fmt.Printf("   %s\n", apperrors.InstallHint("fluidsynth"))
	}

	if status.SoundFont != "" {
		fmt.Printf("✅ SoundFont: %s\n", status.SoundFont)
	} else {
		fmt.Println("❌ SoundFont: Not found")
		fmt.Printf("   %s\n", apperrors.InstallHint("soundfont"))
	}

	if status.FFmpeg {
		fmt.Printf("✅ ffmpeg: %s\n", orUnknown(status.FFmpegVersion))
	} else {
		fmt.Println("❌ ffmpeg: Not installed (needed for MP3/OGG/FLAC)")
		fmt.Printf("   %s\n", apperrors.InstallHint("ffmpeg"))
	}

	fmt.Println()
	if status.Ready() {
		fmt.Println("Audio export is ready. Use --export-audio when generating.")
	} else {
		fmt.Println("Audio export is not available. Tracks can still be generated as MIDI.")
	}
	return nil
}

// openPresetStore opens the user preset store in the home directory.
func openPresetStore() (*preset.Store, error) {
	dir, err := preset.DefaultDir()
	if err != nil {
		return nil, err
	}
	return preset.NewStore(dir), nil
}

// validStyle reports whether name is in the style catalog.
func validStyle(name string) bool {
	for _, s := range style.Available() {
		if s == name {
			return true
		}
	}
	return false
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
