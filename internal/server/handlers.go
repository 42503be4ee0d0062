package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yrbane/acidgrid/internal/pipeline"
	"github.com/yrbane/acidgrid/internal/render"
	"github.com/yrbane/acidgrid/internal/style"
	"github.com/yrbane/acidgrid/internal/timesig"
)

const maxMeasures = 1024

// audioContentTypes maps output formats to their MIME types.
var audioContentTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
}

// handleIndex serves the generation form
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	type styleInfo struct {
		Name        string
		Description string
		TempoMin    int
		TempoMax    int
	}
	styles := make([]styleInfo, 0, len(style.Available()))
	for _, name := range style.Available() {
		st := style.Get(name)
		styles = append(styles, styleInfo{
			Name:        st.Name,
			Description: st.Description,
			TempoMin:    st.TempoMin,
			TempoMax:    st.TempoMax,
		})
	}

	s.render(w, "index.html", map[string]any{
		"Styles":          styles,
		"Formats":         render.Formats(),
		"TimeSignatures":  timesig.Available(),
		"DefaultMeasures": pipeline.DefaultConfig().Measures,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","jobs":%d}`, s.jobs.Count())
}

// handleGenerate starts a generation job from the form values
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, "Invalid form data.", http.StatusBadRequest)
		return
	}

	cfg := pipeline.DefaultConfig()
	cfg.UseCache = true

	if v := r.FormValue("style"); v != "" {
		cfg.Style = v
	}

	cfg.Measures = formInt(r, "measures", cfg.Measures)
	if cfg.Measures < 1 || cfg.Measures > maxMeasures {
		s.renderError(w, fmt.Sprintf("Measures must be between 1 and %d.", maxMeasures), http.StatusBadRequest)
		return
	}

	cfg.Tempo = formInt(r, "tempo", 0)

	if v := r.FormValue("swing"); v != "" {
		swing, err := strconv.ParseFloat(v, 64)
		if err != nil || swing < 0 || swing > 1 {
			s.renderError(w, "Swing must be a number between 0 and 1.", http.StatusBadRequest)
			return
		}
		cfg.Swing = &swing
	}

	if v := r.FormValue("time_signature"); v != "" {
		if _, err := timesig.Parse(v); err != nil {
			s.renderError(w, fmt.Sprintf("Invalid time signature %q.", v), http.StatusBadRequest)
			return
		}
		cfg.TimeSignature = v
	}

	if v := r.FormValue("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			s.renderError(w, "Seed must be an integer.", http.StatusBadRequest)
			return
		}
		cfg.Seed = seed
	} else {
		cfg.Seed = pipeline.NewSeed()
	}

	cfg.Name = r.FormValue("name")

	if r.FormValue("export_audio") != "" {
		cfg.ExportAudio = true
		if v := r.FormValue("audio_format"); v != "" {
			if _, err := render.ParseFormat(v); err != nil {
				s.renderError(w, fmt.Sprintf("Unsupported audio format %q.", v), http.StatusBadRequest)
				return
			}
			cfg.AudioFormat = v
		}
	}

	job, err := s.jobs.Create()
	if err != nil {
		s.logger.Error("job create failed", "error", err)
		s.renderError(w, "Could not start the job.", http.StatusInternalServerError)
		return
	}

	go s.jobs.Process(job, cfg)

	s.render(w, "processing.html", map[string]any{
		"JobID": job.ID,
		"Style": cfg.Style,
		"Seed":  cfg.Seed,
	})
}

// handleStatus streams job progress via SSE
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	job := s.jobs.Get(chi.URLParam(r, "id"))
	if job == nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case update, open := <-job.Updates:
			if !open {
				status, _ := job.Status()
				fmt.Fprintf(w, "event: done\ndata: %s\n\n", status)
				flusher.Flush()
				return
			}
			fmt.Fprintf(w, "event: progress\ndata: %s\n\n", update)
			flusher.Flush()
		}
	}
}

// handleResult renders the finished track page
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	job := s.jobs.Get(chi.URLParam(r, "id"))
	if job == nil {
		s.renderError(w, "Job not found.", http.StatusNotFound)
		return
	}

	status, stage := job.Status()
	switch status {
	case StatusFailed:
		s.render(w, "error.html", map[string]any{"Error": job.Err()})
		return
	case StatusComplete:
	default:
		s.render(w, "processing.html", map[string]any{
			"JobID": job.ID,
			"Stage": stage,
		})
		return
	}

	result := job.Result()
	type trackCount struct {
		Name  string
		Count int
	}
	counts := make([]trackCount, 0, len(result.EventCounts))
	for _, name := range []string{"Rhythm", "Bassline", "Sub Bass", "Synth Accompaniment", "Synth Lead"} {
		counts = append(counts, trackCount{name, result.EventCounts[name]})
	}

	s.render(w, "result.html", map[string]any{
		"JobID":         job.ID,
		"TrackName":     result.TrackName,
		"Style":         result.Style.Name,
		"Description":   result.Style.Description,
		"Tempo":         result.Tempo,
		"TimeSignature": result.TimeSignature.String(),
		"Seed":          result.Seed,
		"Sections":      result.SectionNames(),
		"Counts":        counts,
		"TotalEvents":   result.TotalEvents,
		"HasAudio":      result.AudioPath != "",
		"AudioFormat":   filepath.Ext(result.AudioPath),
	})
}

// handleDownloadMIDI serves the generated MIDI file
func (s *Server) handleDownloadMIDI(w http.ResponseWriter, r *http.Request) {
	job := s.jobs.Get(chi.URLParam(r, "id"))
	result := completedResult(job)
	if result == nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	if _, err := os.Stat(result.MIDIPath); err != nil {
		http.Error(w, "MIDI file not available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.TrackName+".mid"))
	http.ServeFile(w, r, result.MIDIPath)
}

// handleDownloadAudio serves the rendered audio file
func (s *Server) handleDownloadAudio(w http.ResponseWriter, r *http.Request) {
	job := s.jobs.Get(chi.URLParam(r, "id"))
	result := completedResult(job)
	if result == nil || result.AudioPath == "" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	if _, err := os.Stat(result.AudioPath); err != nil {
		http.Error(w, "Audio file not available", http.StatusNotFound)
		return
	}

	ext := filepath.Ext(result.AudioPath)
	contentType := audioContentTypes[ext]
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.TrackName+ext))
	http.ServeFile(w, r, result.AudioPath)
}

// completedResult returns the result of a finished job, nil otherwise.
func completedResult(job *Job) *pipeline.Result {
	if job == nil {
		return nil
	}
	if status, _ := job.Status(); status != StatusComplete {
		return nil
	}
	return job.Result()
}

// formInt parses an integer form value, returning def when absent or
// malformed.
func formInt(r *http.Request, name string, def int) int {
	v := r.FormValue(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// render renders a template
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template error", "template", name, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// renderError renders an error message
func (s *Server) renderError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	s.templates.ExecuteTemplate(w, "error.html", map[string]any{
		"Error": message,
	})
}
