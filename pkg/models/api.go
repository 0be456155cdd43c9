package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// CreateJobRequest represents a request to submit a frequency series for synthesis
type CreateJobRequest struct {
	Body struct {
		Frequencies []float64 `json:"frequencies" minItems:"1" maxItems:"50000" required:"true" doc:"Frequency values extracted from the spreadsheet THz column"`
		CompanyName string    `json:"company_name,omitempty" maxLength:"100" doc:"Submitting company label used in artifact filenames and the report"`
	}
}

// CreateJobResponseBody is the body of the job submission response
type CreateJobResponseBody struct {
	ID     string    `json:"id" doc:"Job unique identifier"`
	Status JobStatus `json:"status" enum:"queued,processing,complete,failed" doc:"Job status at submission time"`
}

// CreateJobResponse represents the response from submitting a job
type CreateJobResponse struct {
	Status int
	Body   CreateJobResponseBody
}

// GetJobStatusRequest represents a request to get job status
type GetJobStatusRequest struct {
	ID string `path:"id" doc:"Job ID"`
}

// GetJobStatusResponseBody is the body of the status response
type GetJobStatusResponseBody struct {
	ID          string     `json:"id" doc:"Job ID"`
	Status      JobStatus  `json:"status" enum:"queued,processing,complete,failed" doc:"Job status"`
	Message     string     `json:"message,omitempty" doc:"Human-readable status message"`
	CreatedAt   time.Time  `json:"created_at" doc:"Job creation timestamp"`
	CompletedAt *time.Time `json:"completed_at,omitempty" doc:"Completion timestamp for terminal jobs"`
	Error       string     `json:"error,omitempty" doc:"Failure detail for failed jobs"`
}

// GetJobStatusResponse represents the current status of a job
type GetJobStatusResponse struct {
	Body GetJobStatusResponseBody
}

// CancelJobRequest represents a request to cancel a job
type CancelJobRequest struct {
	ID string `path:"id" doc:"Job ID"`
}

// CancelJobResponse represents the response from cancelling a job
type CancelJobResponse struct {
	Body struct {
		ID     string    `json:"id" doc:"Job ID"`
		Status JobStatus `json:"status" doc:"Job status after the cancellation request"`
	}
}
