// Package jobs owns the asynchronous synthesis job lifecycle: submission,
// the bounded worker pool, state transitions, and result retrieval.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/scentesia/neuroaudio/internal/frequency"
	"github.com/scentesia/neuroaudio/internal/report"
	"github.com/scentesia/neuroaudio/pkg/models"
)

// Errors surfaced by the coordinator. Validation errors come straight from
// the frequency package at submission time.
var (
	ErrNotFound  = errors.New("jobs: job not found")
	ErrNotReady  = errors.New("jobs: job not ready")
	ErrQueueFull = errors.New("jobs: queue is full")
	ErrClosed    = errors.New("jobs: coordinator is shut down")
)

// CancelledDetail is recorded on jobs cancelled before processing started.
const CancelledDetail = "cancelled by caller"

// FailedError wraps the failure detail recorded on a failed job.
type FailedError struct {
	Detail string
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("jobs: job failed: %s", e.Detail)
}

// Synthesizer renders a frequency series into an audio artifact.
type Synthesizer interface {
	Synthesize(ctx context.Context, series frequency.Series) (*models.AudioArtifact, error)
}

// Renderer produces the report artifact for a statistics summary.
type Renderer interface {
	Render(meta report.Meta, sum frequency.Summary) (*models.ReportArtifact, error)
}

// Archiver receives copies of completed artifacts. Optional; archive
// failures never fail the job.
type Archiver interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
}

// Options configures a Coordinator.
type Options struct {
	Workers          int
	QueueSize        int
	JobTimeout       time.Duration
	HistogramBuckets int
	Synth            Synthesizer
	Renderer         Renderer
	Archive          Archiver // may be nil
}

type job struct {
	id          uuid.UUID
	label       string
	series      frequency.Series
	status      models.JobStatus
	createdAt   time.Time
	completedAt *time.Time
	errDetail   string
	audio       *models.AudioArtifact
	report      *models.ReportArtifact
	cancel      context.CancelFunc // set while processing
}

// Coordinator is the in-memory job table plus its worker pool. Safe for
// concurrent use: pollers take read locks, the owning worker is the single
// writer for a job's fields after submission.
type Coordinator struct {
	opts  Options
	mu    sync.RWMutex
	jobs  map[uuid.UUID]*job
	queue chan uuid.UUID

	closed  bool
	baseCtx context.Context
	stop    context.CancelFunc
	wg      sync.WaitGroup
}

// NewCoordinator creates a coordinator. Call Start to launch the workers
// and Close to drain and stop them.
func NewCoordinator(opts Options) *Coordinator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 1
	}
	if opts.HistogramBuckets < 1 {
		opts.HistogramBuckets = 10
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		opts:    opts,
		jobs:    make(map[uuid.UUID]*job),
		queue:   make(chan uuid.UUID, opts.QueueSize),
		baseCtx: ctx,
		stop:    cancel,
	}
}

// Start launches the worker pool.
func (c *Coordinator) Start() {
	for i := 0; i < c.opts.Workers; i++ {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			for id := range c.queue {
				c.run(id)
			}
		}()
	}
	log.Info().Int("workers", c.opts.Workers).Int("queue_size", c.opts.QueueSize).Msg("Job coordinator started")
}

// Close stops accepting submissions, drains the queue, and waits for
// in-flight jobs to finish.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	close(c.queue)
	c.wg.Wait()
	c.stop()
	log.Info().Msg("Job coordinator stopped")
}

// Submit validates the raw values synchronously and, on success, creates a
// job in the queued state and schedules it. The returned id is usable
// immediately for status polling; the caller never blocks on synthesis.
// Validation failures create no job. A full queue fails with ErrQueueFull.
func (c *Coordinator) Submit(values []float64, label string) (uuid.UUID, error) {
	series, err := frequency.NewSeries(values)
	if err != nil {
		return uuid.Nil, err
	}

	j := &job{
		id:        uuid.New(),
		label:     label,
		series:    series,
		status:    models.JobStatusQueued,
		createdAt: time.Now(),
	}

	// Registration and the enqueue share the lock so Close cannot close the
	// queue between them.
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return uuid.Nil, ErrClosed
	}
	select {
	case c.queue <- j.id:
		c.jobs[j.id] = j
	default:
		c.mu.Unlock()
		return uuid.Nil, ErrQueueFull
	}
	c.mu.Unlock()

	log.Info().Str("job_id", j.id.String()).Int("frequencies", series.Len()).Str("label", label).Msg("Job queued")
	return j.id, nil
}

// Status returns the job's current state.
func (c *Coordinator) Status(id uuid.UUID) (models.JobStatus, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	j, ok := c.jobs[id]
	if !ok {
		return "", ErrNotFound
	}
	return j.status, nil
}

// Info returns a snapshot of the job for status reporting.
func (c *Coordinator) Info(id uuid.UUID) (models.JobInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	j, ok := c.jobs[id]
	if !ok {
		return models.JobInfo{}, ErrNotFound
	}
	info := models.JobInfo{
		ID:          j.id.String(),
		Label:       j.label,
		Status:      j.status,
		CreatedAt:   j.createdAt,
		ErrorDetail: j.errDetail,
	}
	if j.completedAt != nil {
		t := *j.completedAt
		info.CompletedAt = &t
	}
	return info, nil
}

// Result returns both artifacts of a complete job. While the job is queued
// or processing it fails with ErrNotReady; a failed job fails with a
// *FailedError carrying the recorded detail. A failed job never exposes
// partial artifacts.
func (c *Coordinator) Result(id uuid.UUID) (*models.AudioArtifact, *models.ReportArtifact, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	j, ok := c.jobs[id]
	if !ok {
		return nil, nil, ErrNotFound
	}
	switch j.status {
	case models.JobStatusQueued, models.JobStatusProcessing:
		return nil, nil, ErrNotReady
	case models.JobStatusFailed:
		return nil, nil, &FailedError{Detail: j.errDetail}
	}
	return j.audio, j.report, nil
}

// Cancel requests cancellation. A queued job moves straight to failed with
// a cancelled detail and its work never starts. A processing job gets a
// best-effort context cancel and may still complete normally. Terminal jobs
// are unchanged. Returns the status after the request.
func (c *Coordinator) Cancel(id uuid.UUID) (models.JobStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	j, ok := c.jobs[id]
	if !ok {
		return "", ErrNotFound
	}
	switch j.status {
	case models.JobStatusQueued:
		now := time.Now()
		j.status = models.JobStatusFailed
		j.errDetail = CancelledDetail
		j.completedAt = &now
		log.Info().Str("job_id", id.String()).Msg("Queued job cancelled")
	case models.JobStatusProcessing:
		if j.cancel != nil {
			j.cancel()
		}
		log.Info().Str("job_id", id.String()).Msg("Cancellation requested for processing job")
	}
	return j.status, nil
}

// run executes one job: synthesis and statistics concurrently over the
// shared read-only series, then the report, then an atomic transition to
// complete with both artifacts attached.
func (c *Coordinator) run(id uuid.UUID) {
	c.mu.Lock()
	j, ok := c.jobs[id]
	if !ok || j.status != models.JobStatusQueued {
		// Cancelled while queued; nothing to do.
		c.mu.Unlock()
		return
	}
	ctx := c.baseCtx
	var cancel context.CancelFunc
	if c.opts.JobTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.opts.JobTimeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	j.status = models.JobStatusProcessing
	j.cancel = cancel
	series, label, created := j.series, j.label, j.createdAt
	c.mu.Unlock()
	defer cancel()

	log.Info().Str("job_id", id.String()).Msg("Job processing")

	var (
		audio    *models.AudioArtifact
		synthErr error
		done     = make(chan struct{})
	)
	go func() {
		defer close(done)
		audio, synthErr = c.opts.Synth.Synthesize(ctx, series)
	}()
	sum := frequency.Summarize(series, c.opts.HistogramBuckets)
	<-done

	if synthErr != nil {
		c.fail(id, synthErr)
		return
	}

	rep, err := c.opts.Renderer.Render(report.Meta{
		JobID:         models.ShortID(id.String()),
		Label:         label,
		CreatedAt:     created,
		AudioDuration: audio.Duration,
	}, sum)
	if err != nil {
		c.fail(id, err)
		return
	}

	now := time.Now()
	c.mu.Lock()
	j.status = models.JobStatusComplete
	j.audio = audio
	j.report = rep
	j.completedAt = &now
	c.mu.Unlock()
	log.Info().Str("job_id", id.String()).Dur("elapsed", now.Sub(created)).Msg("Job complete")

	c.archive(id, audio, rep)
}

// fail records a terminal failure unless cancellation already closed the job.
func (c *Coordinator) fail(id uuid.UUID, cause error) {
	now := time.Now()
	c.mu.Lock()
	j, ok := c.jobs[id]
	if !ok || j.status.Terminal() {
		c.mu.Unlock()
		return
	}
	j.status = models.JobStatusFailed
	j.errDetail = cause.Error()
	j.completedAt = &now
	c.mu.Unlock()
	log.Warn().Str("job_id", id.String()).Err(cause).Msg("Job failed")
}

// archive copies completed artifacts to the configured store, if any.
// The job already completed; failures here only log.
func (c *Coordinator) archive(id uuid.UUID, audio *models.AudioArtifact, rep *models.ReportArtifact) {
	if c.opts.Archive == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	audioKey := fmt.Sprintf("audio/%s.wav", id)
	if err := c.opts.Archive.Upload(ctx, audioKey, audio.MIMEType, audio.Data); err != nil {
		log.Warn().Str("job_id", id.String()).Err(err).Msg("Audio archive upload failed")
	}
	reportKey := fmt.Sprintf("reports/%s.pdf", id)
	if err := c.opts.Archive.Upload(ctx, reportKey, rep.MIMEType, rep.Data); err != nil {
		log.Warn().Str("job_id", id.String()).Err(err).Msg("Report archive upload failed")
	}
}
