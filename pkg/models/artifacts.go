package models

import "time"

// AudioArtifact is the encoded waveform produced by a completed job.
// Immutable once produced; owned by its job.
type AudioArtifact struct {
	Data       []byte
	MIMEType   string
	SampleRate int
	Duration   time.Duration
}

// ReportArtifact is the rendered report document produced by a completed job.
// Immutable once produced; owned by its job.
type ReportArtifact struct {
	Data     []byte
	MIMEType string
	Pages    int
}
