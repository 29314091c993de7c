package submission

import (
	"context"
	"testing"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	"github.com/Negosyo-Digital/platform-backend/internal/testinfra"
	"github.com/Negosyo-Digital/platform-backend/pkg/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCreator(t *testing.T) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := testinfra.Pool.Exec(context.Background(), `INSERT INTO negosyo.creators
		(id, first_name, last_name, email, referral_code, status, role, created_at, updated_at)
		VALUES ($1, 'Liza', 'Dela Cruz', 'liza@example.com', $2, 'active', 'creator', now(), now())`,
		id, uuid.NewString()[:8])
	require.NoError(t, err)
	return id
}

func creatorIdentity(id uuid.UUID) *auth.Identity {
	return &auth.Identity{CreatorID: id, Role: consts.RoleCreator}
}

func adminIdentity() *auth.Identity {
	return &auth.Identity{CreatorID: uuid.New(), Role: consts.RoleAdmin}
}

func submissionStatus(t *testing.T, id uint64) consts.SubmissionStatus {
	t.Helper()
	var status consts.SubmissionStatus
	require.NoError(t, testinfra.Pool.QueryRow(context.Background(),
		"SELECT status FROM negosyo.submissions WHERE id = $1", id).Scan(&status))
	return status
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestSubmissionLifecycle(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	creatorID := seedCreator(t)
	identity := creatorIdentity(creatorID)

	submissionID, err := NewCreateSubmission(factory).Execute(context.Background(), &dto.CreateSubmissionRequest{
		BusinessName: "Lola's Lugawan",
		BusinessType: "carinderia",
		City:         "Quezon City",
	}, identity)
	require.NoError(t, err)
	assert.Equal(t, consts.SubmissionStatusDraft, submissionStatus(t, submissionID))

	// incomplete drafts cannot be submitted
	err = NewSubmit(factory).Execute(context.Background(), submissionID, identity)
	var validation errs.ValidationError
	require.ErrorAs(t, err, &validation)

	photos := []string{"1.jpg", "2.jpg", "3.jpg"}
	err = NewUpdateSubmission(factory).Execute(context.Background(), submissionID, &dto.UpdateSubmissionRequest{
		Photos:        &photos,
		VideoURL:      strPtr("https://media.example.com/interview.mp4"),
		AgreedToTerms: boolPtr(true),
		OwnerEmail:    strPtr("lola@example.com"),
	}, identity)
	require.NoError(t, err)

	require.NoError(t, NewSubmit(factory).Execute(context.Background(), submissionID, identity))
	assert.Equal(t, consts.SubmissionStatusSubmitted, submissionStatus(t, submissionID))

	require.NoError(t, NewMarkInReview(factory).Execute(context.Background(), submissionID, adminIdentity()))
	assert.Equal(t, consts.SubmissionStatusInReview, submissionStatus(t, submissionID))

	require.NoError(t, NewApprove(factory).Execute(context.Background(), submissionID, adminIdentity()))
	assert.Equal(t, consts.SubmissionStatusApproved, submissionStatus(t, submissionID))

	// approval queued the owner notification
	var mails int
	require.NoError(t, testinfra.Pool.QueryRow(context.Background(),
		"SELECT count(*) FROM negosyo.outbox WHERE payload->>'Recipient' = 'lola@example.com'").Scan(&mails))
	assert.Equal(t, 1, mails)

	// approving twice is not a valid transition
	err = NewApprove(factory).Execute(context.Background(), submissionID, adminIdentity())
	require.ErrorAs(t, err, &validation)
}

func TestSubmitGuards(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	creatorID := seedCreator(t)
	identity := creatorIdentity(creatorID)

	submissionID, err := NewCreateSubmission(factory).Execute(context.Background(), &dto.CreateSubmissionRequest{
		BusinessName: "Guard Test",
	}, identity)
	require.NoError(t, err)

	var validation errs.ValidationError

	// photos alone are not enough
	photos := []string{"1.jpg", "2.jpg", "3.jpg"}
	require.NoError(t, NewUpdateSubmission(factory).Execute(context.Background(), submissionID,
		&dto.UpdateSubmissionRequest{Photos: &photos}, identity))
	err = NewSubmit(factory).Execute(context.Background(), submissionID, identity)
	require.ErrorAs(t, err, &validation)

	// media but no terms
	require.NoError(t, NewUpdateSubmission(factory).Execute(context.Background(), submissionID,
		&dto.UpdateSubmissionRequest{AudioURL: strPtr("https://media.example.com/a.mp3")}, identity))
	err = NewSubmit(factory).Execute(context.Background(), submissionID, identity)
	require.ErrorAs(t, err, &validation)

	require.NoError(t, NewUpdateSubmission(factory).Execute(context.Background(), submissionID,
		&dto.UpdateSubmissionRequest{AgreedToTerms: boolPtr(true)}, identity))
	require.NoError(t, NewSubmit(factory).Execute(context.Background(), submissionID, identity))
}

func TestUpdateSubmissionPermissions(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	creatorID := seedCreator(t)
	otherID := seedCreator(t)

	submissionID, err := NewCreateSubmission(factory).Execute(context.Background(), &dto.CreateSubmissionRequest{
		BusinessName: "Owner Only",
	}, creatorIdentity(creatorID))
	require.NoError(t, err)

	var permissions errs.PermissionsError
	err = NewUpdateSubmission(factory).Execute(context.Background(), submissionID,
		&dto.UpdateSubmissionRequest{City: strPtr("Cebu")}, creatorIdentity(otherID))
	require.ErrorAs(t, err, &permissions)

	// monetary fields are admin-only
	amount := int64(150000)
	err = NewUpdateSubmission(factory).Execute(context.Background(), submissionID,
		&dto.UpdateSubmissionRequest{Amount: &amount}, creatorIdentity(creatorID))
	require.ErrorAs(t, err, &permissions)

	require.NoError(t, NewUpdateSubmission(factory).Execute(context.Background(), submissionID,
		&dto.UpdateSubmissionRequest{Amount: &amount}, adminIdentity()))
}

func TestRejectTerminalGuard(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	creatorID := seedCreator(t)

	var submissionID uint64
	err := testinfra.Pool.QueryRow(context.Background(), `INSERT INTO negosyo.submissions
		(creator_id, business_name, status, created_at, updated_at)
		VALUES ($1, 'Done Deal', $2, now(), now()) RETURNING id`,
		creatorID, consts.SubmissionStatusPaid).Scan(&submissionID)
	require.NoError(t, err)

	var validation errs.ValidationError
	err = NewReject(factory).Execute(context.Background(), submissionID, adminIdentity())
	require.ErrorAs(t, err, &validation)
}

func TestLegacyCompletedReadsAsPaid(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	creatorID := seedCreator(t)

	var submissionID uint64
	err := testinfra.Pool.QueryRow(context.Background(), `INSERT INTO negosyo.submissions
		(creator_id, business_name, status, created_at, updated_at)
		VALUES ($1, 'Old Record', 'completed', now(), now()) RETURNING id`,
		creatorID).Scan(&submissionID)
	require.NoError(t, err)

	uow := factory.GetUoW()
	tx, err := uow.Begin()
	require.NoError(t, err)
	defer uow.Rollback()

	sub, err := repo.NewSubmissionRepo(tx).GetByID(context.Background(), submissionID)
	require.NoError(t, err)
	assert.Equal(t, consts.SubmissionStatusPaid, sub.Status)

	// the stored value is untouched
	var raw string
	require.NoError(t, testinfra.Pool.QueryRow(context.Background(),
		"SELECT status FROM negosyo.submissions WHERE id = $1", submissionID).Scan(&raw))
	assert.Equal(t, "completed", raw)
}
