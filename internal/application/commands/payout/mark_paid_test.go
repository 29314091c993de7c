package payout

import (
	"context"
	"testing"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/testinfra"
	"github.com/Negosyo-Digital/platform-backend/pkg/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminIdentity() *auth.Identity {
	return &auth.Identity{CreatorID: uuid.New(), Role: consts.RoleAdmin}
}

func seedCreator(t *testing.T) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := testinfra.Pool.Exec(context.Background(), `INSERT INTO negosyo.creators
		(id, first_name, last_name, email, referral_code, status, role, created_at, updated_at)
		VALUES ($1, 'Maria', 'Santos', 'maria@example.com', $2, 'active', 'creator', now(), now())`,
		id, uuid.NewString()[:8])
	require.NoError(t, err)
	return id
}

func seedSubmission(t *testing.T, creatorID uuid.UUID, status consts.SubmissionStatus, payout int64) uint64 {
	t.Helper()
	var id uint64
	err := testinfra.Pool.QueryRow(context.Background(), `INSERT INTO negosyo.submissions
		(creator_id, business_name, status, creator_payout, created_at, updated_at)
		VALUES ($1, 'Test Tindahan', $2, $3, now(), now()) RETURNING id`,
		creatorID, status, payout).Scan(&id)
	require.NoError(t, err)
	return id
}

func creatorBalances(t *testing.T, creatorID uuid.UUID) (int64, int64) {
	t.Helper()
	var balance, total int64
	err := testinfra.Pool.QueryRow(context.Background(),
		"SELECT balance, total_earnings FROM negosyo.creators WHERE id = $1", creatorID).Scan(&balance, &total)
	require.NoError(t, err)
	return balance, total
}

func TestMarkPaidCreditsOnce(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	creatorID := seedCreator(t)
	submissionID := seedSubmission(t, creatorID, consts.SubmissionStatusWebsiteGenerated, 50000)

	cmd := NewMarkPaid(factory)
	resp, err := cmd.Execute(context.Background(), submissionID, adminIdentity())
	require.NoError(t, err)
	assert.Equal(t, int64(50000), resp.NewBalance)
	assert.Equal(t, int64(50000), resp.NewTotalEarnings)

	// repeating the call must not credit twice
	_, err = cmd.Execute(context.Background(), submissionID, adminIdentity())
	var conflict errs.ConflictError
	require.ErrorAs(t, err, &conflict)

	balance, total := creatorBalances(t, creatorID)
	assert.Equal(t, int64(50000), balance)
	assert.Equal(t, int64(50000), total)

	var status consts.SubmissionStatus
	var paidAt, creatorPaidAt *time.Time
	err = testinfra.Pool.QueryRow(context.Background(),
		"SELECT status, paid_at, creator_paid_at FROM negosyo.submissions WHERE id = $1", submissionID).
		Scan(&status, &paidAt, &creatorPaidAt)
	require.NoError(t, err)
	assert.Equal(t, consts.SubmissionStatusPaid, status)
	assert.NotNil(t, paidAt)
	assert.NotNil(t, creatorPaidAt)
}

func TestMarkPaidRequiresAdmin(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	creatorID := seedCreator(t)
	submissionID := seedSubmission(t, creatorID, consts.SubmissionStatusApproved, 100)

	_, err := NewMarkPaid(factory).Execute(context.Background(), submissionID,
		&auth.Identity{CreatorID: creatorID, Role: consts.RoleCreator})
	var permissions errs.PermissionsError
	require.ErrorAs(t, err, &permissions)

	balance, _ := creatorBalances(t, creatorID)
	assert.Zero(t, balance)
}

func TestMarkPaidRejectsWrongStatus(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	creatorID := seedCreator(t)
	submissionID := seedSubmission(t, creatorID, consts.SubmissionStatusDraft, 100)

	_, err := NewMarkPaid(factory).Execute(context.Background(), submissionID, adminIdentity())
	var validation errs.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestMarkPaidQueuesPayoutMail(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	creatorID := seedCreator(t)
	submissionID := seedSubmission(t, creatorID, consts.SubmissionStatusApproved, 12345)

	_, err := NewMarkPaid(factory).Execute(context.Background(), submissionID, adminIdentity())
	require.NoError(t, err)

	var count int
	err = testinfra.Pool.QueryRow(context.Background(),
		"SELECT count(*) FROM negosyo.outbox WHERE event = 'SendMail' AND payload->>'Recipient' = 'maria@example.com'").
		Scan(&count)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 1)
}

func TestBulkMarkPaidIsolatesFailures(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	creatorID := seedCreator(t)
	good := seedSubmission(t, creatorID, consts.SubmissionStatusApproved, 1000)
	alreadyPaid := seedSubmission(t, creatorID, consts.SubmissionStatusPaid, 1000)
	draft := seedSubmission(t, creatorID, consts.SubmissionStatusDraft, 1000)

	resp, err := NewBulkMarkPaid(factory).Execute(context.Background(), &dto.BulkMarkPaidRequest{
		SubmissionIDs: []uint64{good, alreadyPaid, draft, 99999999},
	}, adminIdentity())
	require.NoError(t, err)
	require.Len(t, resp.Results, 4)

	assert.Equal(t, "paid", resp.Results[0].Status)
	assert.Equal(t, "already_paid", resp.Results[1].Status)
	assert.Equal(t, "invalid_status", resp.Results[2].Status)
	assert.Equal(t, "not_found", resp.Results[3].Status)

	// only the good one credited
	balance, _ := creatorBalances(t, creatorID)
	assert.Equal(t, int64(1000), balance)
}
