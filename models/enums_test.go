package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApplicationStatus(t *testing.T) {
	for _, raw := range []string{"draft", "review", "finalized", "submitted"} {
		status, err := ParseApplicationStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, ApplicationStatus(raw), status)
	}

	_, err := ParseApplicationStatus("archived")
	assert.EqualError(t, err, `invalid application status "archived"`)
	_, err = ParseApplicationStatus("")
	assert.Error(t, err)
}

func TestParseStatusesRejectEachOther(t *testing.T) {
	_, err := ParseIdeaStatus("finalized")
	assert.Error(t, err)
	_, err = ParseProjectStatus("approved")
	assert.Error(t, err)
	_, err = ParseApplicationStatus("pending")
	assert.Error(t, err)
}
