package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/scentesia/neuroaudio/internal/frequency"
	"github.com/scentesia/neuroaudio/internal/jobs"
	"github.com/scentesia/neuroaudio/internal/report"
	"github.com/scentesia/neuroaudio/pkg/models"
)

// Coordinator is the subset of the job coordinator the handlers need.
type Coordinator interface {
	Submit(values []float64, label string) (uuid.UUID, error)
	Info(id uuid.UUID) (models.JobInfo, error)
	Result(id uuid.UUID) (*models.AudioArtifact, *models.ReportArtifact, error)
	Cancel(id uuid.UUID) (models.JobStatus, error)
}

// JobsHandler handles job-related HTTP requests
type JobsHandler struct {
	coord Coordinator
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(coord Coordinator) *JobsHandler {
	return &JobsHandler{coord: coord}
}

// CreateJob validates the submitted frequency series and schedules a
// synthesis job. Validation failures never create a job.
func (h *JobsHandler) CreateJob(ctx context.Context, req *models.CreateJobRequest) (*models.CreateJobResponse, error) {
	log.Info().Int("frequencies", len(req.Body.Frequencies)).Str("company", req.Body.CompanyName).Msg("Job submission received")

	id, err := h.coord.Submit(req.Body.Frequencies, req.Body.CompanyName)
	if err != nil {
		var verr *frequency.ValidationError
		switch {
		case errors.Is(err, frequency.ErrEmptyInput):
			return nil, huma.Error400BadRequest("No frequency values supplied. The THz column appears to be empty.", err)
		case errors.As(err, &verr):
			return nil, huma.Error400BadRequest(fmt.Sprintf("Frequency series contains %d invalid value(s).", len(verr.Entries)), err)
		case errors.Is(err, jobs.ErrQueueFull), errors.Is(err, jobs.ErrClosed):
			return nil, huma.Error503ServiceUnavailable("Processing queue is full. Please retry shortly.", err)
		}
		return nil, huma.Error500InternalServerError("Failed to submit job", err)
	}

	log.Info().Str("job_id", id.String()).Msg("Job submitted")
	return &models.CreateJobResponse{
		Status: http.StatusCreated,
		Body: models.CreateJobResponseBody{
			ID:     id.String(),
			Status: models.JobStatusQueued,
		},
	}, nil
}

// GetJobStatus returns the current status of a job
func (h *JobsHandler) GetJobStatus(ctx context.Context, req *models.GetJobStatusRequest) (*models.GetJobStatusResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid job ID", err)
	}

	info, err := h.coord.Info(id)
	if err != nil {
		return nil, huma.Error404NotFound("Job not found", err)
	}

	return &models.GetJobStatusResponse{
		Body: models.GetJobStatusResponseBody{
			ID:          info.ID,
			Status:      info.Status,
			Message:     statusMessage(info),
			CreatedAt:   info.CreatedAt,
			CompletedAt: info.CompletedAt,
			Error:       info.ErrorDetail,
		},
	}, nil
}

// CancelJob requests cancellation of a job
func (h *JobsHandler) CancelJob(ctx context.Context, req *models.CancelJobRequest) (*models.CancelJobResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid job ID", err)
	}

	status, err := h.coord.Cancel(id)
	if err != nil {
		return nil, huma.Error404NotFound("Job not found", err)
	}

	resp := &models.CancelJobResponse{}
	resp.Body.ID = req.ID
	resp.Body.Status = status
	return resp, nil
}

// payload is what a download route streams back to the client.
type payload struct {
	data        []byte
	mimeType    string
	namePattern string // fmt pattern taking label and short id
}

// DownloadAudio streams the synthesized audio of a complete job.
func (h *JobsHandler) DownloadAudio(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, func(audio *models.AudioArtifact, rep *models.ReportArtifact) payload {
		return payload{data: audio.Data, mimeType: audio.MIMEType, namePattern: "NeuroAudio_%s_%s.wav"}
	})
}

// DownloadReport streams the rendered report of a complete job.
func (h *JobsHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, func(audio *models.AudioArtifact, rep *models.ReportArtifact) payload {
		return payload{data: rep.Data, mimeType: rep.MIMEType, namePattern: "Report_%s_%s.pdf"}
	})
}

// download is the shared raw-byte handler for both artifact routes.
func (h *JobsHandler) download(w http.ResponseWriter, r *http.Request, pick func(*models.AudioArtifact, *models.ReportArtifact) payload) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}

	audio, rep, err := h.coord.Result(id)
	if err != nil {
		var ferr *jobs.FailedError
		switch {
		case errors.Is(err, jobs.ErrNotFound):
			http.Error(w, "Job not found", http.StatusNotFound)
		case errors.Is(err, jobs.ErrNotReady):
			http.Error(w, "Job is not finished yet", http.StatusConflict)
		case errors.As(err, &ferr):
			http.Error(w, "Job failed: "+ferr.Detail, http.StatusGone)
		default:
			http.Error(w, "Failed to fetch result", http.StatusInternalServerError)
		}
		return
	}

	info, err := h.coord.Info(id)
	if err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	p := pick(audio, rep)
	label := report.FileLabel(info.Label)
	if label == "" {
		label = "Client"
	}
	filename := fmt.Sprintf(p.namePattern, label, info.ShortID())

	w.Header().Set("Content-Type", p.mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(p.data)))
	if _, err := w.Write(p.data); err != nil {
		log.Warn().Str("job_id", id.String()).Err(err).Msg("Artifact write aborted")
	}
}

// statusMessage creates a human-readable status message
func statusMessage(info models.JobInfo) string {
	switch info.Status {
	case models.JobStatusQueued:
		return "Job queued for processing..."
	case models.JobStatusProcessing:
		return "Synthesizing audio and computing statistics..."
	case models.JobStatusComplete:
		return "Processing complete!"
	case models.JobStatusFailed:
		// The detail travels in the Error field; the message stays generic.
		return "Processing failed. Please try again."
	default:
		return "Unknown status"
	}
}
