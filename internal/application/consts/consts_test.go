package consts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSubmissionStatus(t *testing.T) {
	assert.Equal(t, SubmissionStatusPaid, NormalizeSubmissionStatus(SubmissionStatusCompleted))
	assert.Equal(t, SubmissionStatusDraft, NormalizeSubmissionStatus(SubmissionStatusDraft))
}

func TestTransitionGuards(t *testing.T) {
	assert.True(t, IsTerminal(SubmissionStatusPaid))
	assert.True(t, IsTerminal(SubmissionStatusCompleted))
	assert.False(t, IsTerminal(SubmissionStatusApproved))

	assert.True(t, CanApprove(SubmissionStatusSubmitted))
	assert.True(t, CanApprove(SubmissionStatusInReview))
	assert.False(t, CanApprove(SubmissionStatusDraft))
	assert.False(t, CanApprove(SubmissionStatusRejected))

	assert.True(t, CanGenerateWebsite(SubmissionStatusApproved))
	assert.True(t, CanGenerateWebsite(SubmissionStatusWebsiteGenerated))
	assert.True(t, CanGenerateWebsite(SubmissionStatusCompleted))
	assert.False(t, CanGenerateWebsite(SubmissionStatusRejected))
	assert.False(t, CanGenerateWebsite(SubmissionStatusSubmitted))

	assert.True(t, CanMarkPaid(SubmissionStatusApproved))
	assert.True(t, CanMarkPaid(SubmissionStatusPendingPayment))
	assert.False(t, CanMarkPaid(SubmissionStatusPaid))
	assert.False(t, CanMarkPaid(SubmissionStatusDraft))
}
