package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/scentesia/neuroaudio/internal/frequency"
	"github.com/scentesia/neuroaudio/internal/jobs"
	"github.com/scentesia/neuroaudio/pkg/models"
)

// MockCoordinator implements Coordinator for testing
type MockCoordinator struct {
	mock.Mock
}

func (m *MockCoordinator) Submit(values []float64, label string) (uuid.UUID, error) {
	args := m.Called(values, label)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockCoordinator) Info(id uuid.UUID) (models.JobInfo, error) {
	args := m.Called(id)
	return args.Get(0).(models.JobInfo), args.Error(1)
}

func (m *MockCoordinator) Result(id uuid.UUID) (*models.AudioArtifact, *models.ReportArtifact, error) {
	args := m.Called(id)
	audio, _ := args.Get(0).(*models.AudioArtifact)
	rep, _ := args.Get(1).(*models.ReportArtifact)
	return audio, rep, args.Error(2)
}

func (m *MockCoordinator) Cancel(id uuid.UUID) (models.JobStatus, error) {
	args := m.Called(id)
	return args.Get(0).(models.JobStatus), args.Error(1)
}

func TestCreateJob(t *testing.T) {
	jobID := uuid.New()

	tests := []struct {
		name      string
		freqs     []float64
		submitErr error
		wantErr   bool
	}{
		{
			name:  "valid series",
			freqs: []float64{1.1, 2.2, 3.3},
		},
		{
			name:      "empty series",
			freqs:     []float64{},
			submitErr: frequency.ErrEmptyInput,
			wantErr:   true,
		},
		{
			name:      "invalid values",
			freqs:     []float64{1, -1},
			submitErr: &frequency.ValidationError{Entries: []frequency.InvalidEntry{{Position: 1, Value: -1, Reason: frequency.ReasonNotPositive}}},
			wantErr:   true,
		},
		{
			name:      "queue full",
			freqs:     []float64{1},
			submitErr: jobs.ErrQueueFull,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCoord := &MockCoordinator{}
			if tt.submitErr != nil {
				mockCoord.On("Submit", tt.freqs, "Acme").Return(uuid.Nil, tt.submitErr)
			} else {
				mockCoord.On("Submit", tt.freqs, "Acme").Return(jobID, nil)
			}

			handler := NewJobsHandler(mockCoord)

			req := &models.CreateJobRequest{}
			req.Body.Frequencies = tt.freqs
			req.Body.CompanyName = "Acme"

			resp, err := handler.CreateJob(context.Background(), req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, jobID.String(), resp.Body.ID)
				assert.Equal(t, models.JobStatusQueued, resp.Body.Status)
			}
			mockCoord.AssertExpectations(t)
		})
	}
}

func TestGetJobStatus(t *testing.T) {
	jobID := uuid.New()
	created := time.Now()

	mockCoord := &MockCoordinator{}
	mockCoord.On("Info", jobID).Return(models.JobInfo{
		ID:        jobID.String(),
		Status:    models.JobStatusProcessing,
		CreatedAt: created,
	}, nil)

	handler := NewJobsHandler(mockCoord)
	resp, err := handler.GetJobStatus(context.Background(), &models.GetJobStatusRequest{ID: jobID.String()})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusProcessing, resp.Body.Status)
	assert.NotEmpty(t, resp.Body.Message)
}

func TestGetJobStatusFailed(t *testing.T) {
	jobID := uuid.New()
	mockCoord := &MockCoordinator{}
	mockCoord.On("Info", jobID).Return(models.JobInfo{
		ID:          jobID.String(),
		Status:      models.JobStatusFailed,
		CreatedAt:   time.Now(),
		ErrorDetail: "synthesis bound exceeded",
	}, nil)

	handler := NewJobsHandler(mockCoord)
	resp, err := handler.GetJobStatus(context.Background(), &models.GetJobStatusRequest{ID: jobID.String()})
	require.NoError(t, err)

	// The failure detail lives in Error only; the message stays generic.
	assert.Equal(t, "synthesis bound exceeded", resp.Body.Error)
	assert.Equal(t, "Processing failed. Please try again.", resp.Body.Message)
	assert.NotContains(t, resp.Body.Message, "synthesis bound exceeded")
}

func TestGetJobStatusNotFound(t *testing.T) {
	jobID := uuid.New()
	mockCoord := &MockCoordinator{}
	mockCoord.On("Info", jobID).Return(models.JobInfo{}, jobs.ErrNotFound)

	handler := NewJobsHandler(mockCoord)
	_, err := handler.GetJobStatus(context.Background(), &models.GetJobStatusRequest{ID: jobID.String()})
	assert.Error(t, err)
}

func TestGetJobStatusInvalidID(t *testing.T) {
	handler := NewJobsHandler(&MockCoordinator{})
	_, err := handler.GetJobStatus(context.Background(), &models.GetJobStatusRequest{ID: "not-a-uuid"})
	assert.Error(t, err)
}

func TestCancelJob(t *testing.T) {
	jobID := uuid.New()
	mockCoord := &MockCoordinator{}
	mockCoord.On("Cancel", jobID).Return(models.JobStatusFailed, nil)

	handler := NewJobsHandler(mockCoord)
	resp, err := handler.CancelJob(context.Background(), &models.CancelJobRequest{ID: jobID.String()})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFailed, resp.Body.Status)
}

// downloadRouter mounts the raw download routes the way RegisterRoutes does.
func downloadRouter(handler *JobsHandler) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/api/jobs/{id}/audio", handler.DownloadAudio)
	router.Get("/api/jobs/{id}/report", handler.DownloadReport)
	return router
}

func TestDownloadAudio(t *testing.T) {
	jobID := uuid.New()
	mockCoord := &MockCoordinator{}
	mockCoord.On("Result", jobID).Return(
		&models.AudioArtifact{Data: []byte("RIFF-bytes"), MIMEType: "audio/wav"},
		&models.ReportArtifact{Data: []byte("%PDF-bytes"), MIMEType: "application/pdf"},
		nil,
	)
	mockCoord.On("Info", jobID).Return(models.JobInfo{
		ID:     jobID.String(),
		Label:  "Ção Paulo",
		Status: models.JobStatusComplete,
	}, nil)

	router := downloadRouter(NewJobsHandler(mockCoord))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs/"+jobID.String()+"/audio", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/wav", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "NeuroAudio_Cao_Paulo_")
	assert.Equal(t, "RIFF-bytes", rec.Body.String())
}

func TestDownloadReport(t *testing.T) {
	jobID := uuid.New()
	mockCoord := &MockCoordinator{}
	mockCoord.On("Result", jobID).Return(
		&models.AudioArtifact{Data: []byte("RIFF-bytes"), MIMEType: "audio/wav"},
		&models.ReportArtifact{Data: []byte("%PDF-bytes"), MIMEType: "application/pdf"},
		nil,
	)
	mockCoord.On("Info", jobID).Return(models.JobInfo{ID: jobID.String(), Status: models.JobStatusComplete}, nil)

	router := downloadRouter(NewJobsHandler(mockCoord))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs/"+jobID.String()+"/report", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Report_Client_")
}

func TestDownloadErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		resultErr error
		wantCode  int
	}{
		{"unknown job", jobs.ErrNotFound, http.StatusNotFound},
		{"job not ready", jobs.ErrNotReady, http.StatusConflict},
		{"job failed", &jobs.FailedError{Detail: "synthesis bound exceeded"}, http.StatusGone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobID := uuid.New()
			mockCoord := &MockCoordinator{}
			mockCoord.On("Result", jobID).Return(nil, nil, tt.resultErr)

			router := downloadRouter(NewJobsHandler(mockCoord))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs/"+jobID.String()+"/audio", nil))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestDownloadInvalidID(t *testing.T) {
	router := downloadRouter(NewJobsHandler(&MockCoordinator{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs/xyz/audio", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
