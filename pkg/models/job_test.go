package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortID(t *testing.T) {
	assert.Equal(t, "A1B2C3D4", ShortID("a1b2-c3d4-e5f6"))
	assert.Equal(t, "DEADBEEF", JobInfo{ID: "deadbeef-0000-0000-0000-000000000000"}.ShortID())
	assert.Equal(t, "AB", ShortID("ab"))
	assert.Equal(t, "", ShortID(""))
}

func TestJobStatusTerminal(t *testing.T) {
	assert.False(t, JobStatusQueued.Terminal())
	assert.False(t, JobStatusProcessing.Terminal())
	assert.True(t, JobStatusComplete.Terminal())
	assert.True(t, JobStatusFailed.Terminal())
}
