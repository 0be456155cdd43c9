package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/scentesia/neuroaudio/internal/api/handlers"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(router *chi.Mux, api huma.API, coord handlers.Coordinator) {
	jobsHandler := handlers.NewJobsHandler(coord)

	huma.Register(api, huma.Operation{
		OperationID:   "createJob",
		Method:        http.MethodPost,
		Path:          "/api/jobs",
		Summary:       "Submit a frequency series",
		Description:   "Validates the series, creates a synthesis job and returns its identifier for polling",
		Tags:          []string{"Jobs"},
		DefaultStatus: http.StatusCreated,
	}, jobsHandler.CreateJob)

	huma.Register(api, huma.Operation{
		OperationID: "getJobStatus",
		Method:      http.MethodGet,
		Path:        "/api/jobs/{id}/status",
		Summary:     "Get job status",
		Description: "Returns the current lifecycle state of a job",
		Tags:        []string{"Jobs"},
	}, jobsHandler.GetJobStatus)

	huma.Register(api, huma.Operation{
		OperationID: "cancelJob",
		Method:      http.MethodPost,
		Path:        "/api/jobs/{id}/cancel",
		Summary:     "Cancel a job",
		Description: "Cancels a queued job immediately; cancellation of a running job is best-effort",
		Tags:        []string{"Jobs"},
	}, jobsHandler.CancelJob)

	// Artifact downloads stream raw bytes with their own MIME types, so they
	// bypass huma and sit directly on the router.
	router.Get("/api/jobs/{id}/audio", jobsHandler.DownloadAudio)
	router.Get("/api/jobs/{id}/report", jobsHandler.DownloadReport)
}
