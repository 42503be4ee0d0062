package server

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/yrbane/acidgrid/internal/pipeline"
)

// Job status constants
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusComplete   JobStatus = "complete"
	StatusFailed     JobStatus = "failed"
)

// jobTTL is how long a finished job and its work directory stay around.
const jobTTL = 10 * time.Minute

// Job represents one generation run
type Job struct {
	ID        string
	WorkDir   string
	Updates   chan string
	CreatedAt time.Time

	mu     sync.Mutex
	status JobStatus
	stage  string
	result *pipeline.Result
	err    string
}

// Status returns the current status and stage description.
func (j *Job) Status() (JobStatus, string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status, j.stage
}

// Result returns the pipeline result, nil until the job completes.
func (j *Job) Result() *pipeline.Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// Err returns the failure message, empty unless the job failed.
func (j *Job) Err() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

func (j *Job) setStage(status JobStatus, stage string) {
	j.mu.Lock()
	j.status = status
	j.stage = stage
	j.mu.Unlock()
}

// publish sends an update without blocking; updates are dropped when no
// listener is attached and the buffer is full.
func (j *Job) publish(line string) {
	select {
	case j.Updates <- line:
	default:
	}
}

// updateWriter forwards pipeline progress lines to the job's update
// channel so the SSE stream mirrors the CLI narration.
type updateWriter struct {
	job *Job
}

func (w updateWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			w.job.publish(line)
		}
	}
	return len(p), nil
}

// JobManager manages generation jobs
type JobManager struct {
	jobs map[string]*Job
	mu   sync.RWMutex
}

// NewJobManager creates a new job manager
func NewJobManager() *JobManager {
	return &JobManager{jobs: make(map[string]*Job)}
}

// Create creates a new job with its own work directory
func (m *JobManager) Create() (*Job, error) {
	workDir, err := os.MkdirTemp("", "acidgrid-job-*")
	if err != nil {
		return nil, fmt.Errorf("create job dir: %w", err)
	}

	job := &Job{
		ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		WorkDir:   workDir,
		Updates:   make(chan string, 64),
		CreatedAt: time.Now(),
		status:    StatusPending,
		stage:     "Queued...",
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()
	return job, nil
}

// Get retrieves a job by ID
func (m *JobManager) Get(id string) *Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.jobs[id]
}

// Count returns the number of live jobs.
func (m *JobManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.jobs)
}

// Process runs the generation pipeline for a job. Output lands in the
// job's work directory and is cleaned up after jobTTL.
func (m *JobManager) Process(job *Job, cfg pipeline.Config) {
	defer close(job.Updates)
	defer func() {
		time.AfterFunc(jobTTL, func() {
			os.RemoveAll(job.WorkDir)
			m.mu.Lock()
			delete(m.jobs, job.ID)
			m.mu.Unlock()
		})
	}()

	job.setStage(StatusProcessing, "Generating track...")

	cfg.OutputDir = job.WorkDir
	orch := pipeline.NewOrchestrator(updateWriter{job}, true)
	result, err := orch.Execute(context.Background(), cfg)
	if err != nil {
		job.mu.Lock()
		job.status = StatusFailed
		job.stage = "Failed"
		job.err = err.Error()
		job.mu.Unlock()
		job.publish(fmt.Sprintf("Error: %s", err))
		return
	}

	job.mu.Lock()
	job.status = StatusComplete
	job.stage = "Complete!"
	job.result = result
	job.mu.Unlock()
	job.publish("Complete!")
}
