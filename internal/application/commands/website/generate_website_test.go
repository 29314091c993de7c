package website

import (
	"context"
	"testing"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/lock"
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
		VALUES ($1, 'Jose', 'Reyes', 'jose@example.com', $2, 'active', 'creator', now(), now())`,
		id, uuid.NewString()[:8])
	require.NoError(t, err)
	return id
}

func seedSubmission(t *testing.T, creatorID uuid.UUID, businessType string, status consts.SubmissionStatus) uint64 {
	t.Helper()
	var id uint64
	err := testinfra.Pool.QueryRow(context.Background(), `INSERT INTO negosyo.submissions
		(creator_id, business_name, business_type, owner_phone, photos, status, created_at, updated_at)
		VALUES ($1, 'Kape ni Juan', $2, '0917 555 0000', '{"a.jpg","b.jpg","c.jpg"}', $3, now(), now()) RETURNING id`,
		creatorID, businessType, status).Scan(&id)
	require.NoError(t, err)
	return id
}

func newCommand() *GenerateWebsite {
	return NewGenerateWebsite(db.NewUoWFactory(testinfra.Pool), lock.NewGenerationLock(nil))
}

func TestGenerateWebsiteFirstRender(t *testing.T) {
	creatorID := seedCreator(t)
	submissionID := seedSubmission(t, creatorID, "carinderia", consts.SubmissionStatusApproved)
	identity := &auth.Identity{CreatorID: creatorID, Role: consts.RoleCreator}

	resp, err := newCommand().Execute(context.Background(), submissionID, &dto.GenerateWebsiteRequest{}, identity)
	require.NoError(t, err)
	assert.Equal(t, "essentials", resp.TemplateName)

	var html string
	var status consts.SubmissionStatus
	err = testinfra.Pool.QueryRow(context.Background(), `SELECT w.html, s.status
		FROM negosyo.generated_websites w JOIN negosyo.submissions s ON s.id = w.submission_id
		WHERE w.submission_id = $1`, submissionID).Scan(&html, &status)
	require.NoError(t, err)
	assert.Contains(t, html, "Kape ni Juan")
	assert.Contains(t, html, "0917 555 0000")
	assert.Equal(t, consts.SubmissionStatusWebsiteGenerated, status)
}

func TestGenerateWebsiteRegenerationKeepsOneRow(t *testing.T) {
	creatorID := seedCreator(t)
	submissionID := seedSubmission(t, creatorID, "bakery", consts.SubmissionStatusApproved)
	identity := &auth.Identity{CreatorID: creatorID, Role: consts.RoleCreator}
	cmd := newCommand()

	first, err := cmd.Execute(context.Background(), submissionID, &dto.GenerateWebsiteRequest{}, identity)
	require.NoError(t, err)
	assert.Equal(t, "storefront", first.TemplateName)

	second, err := cmd.Execute(context.Background(), submissionID, &dto.GenerateWebsiteRequest{
		Customizations: map[string]string{"heroStyle": "2"},
	}, identity)
	require.NoError(t, err)
	// regeneration reuses the row and keeps the template
	assert.Equal(t, first.WebsiteID, second.WebsiteID)
	assert.Equal(t, "storefront", second.TemplateName)

	var count int
	err = testinfra.Pool.QueryRow(context.Background(),
		"SELECT count(*) FROM negosyo.generated_websites WHERE submission_id = $1", submissionID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var customizations map[string]string
	err = testinfra.Pool.QueryRow(context.Background(),
		"SELECT customizations FROM negosyo.generated_websites WHERE submission_id = $1", submissionID).Scan(&customizations)
	require.NoError(t, err)
	assert.Equal(t, "2", customizations["heroStyle"])
}

func TestGenerateWebsiteTemplatePin(t *testing.T) {
	creatorID := seedCreator(t)
	submissionID := seedSubmission(t, creatorID, "carinderia", consts.SubmissionStatusApproved)
	identity := &auth.Identity{CreatorID: creatorID, Role: consts.RoleCreator}
	pin := "artisan"

	resp, err := newCommand().Execute(context.Background(), submissionID, &dto.GenerateWebsiteRequest{TemplateName: &pin}, identity)
	require.NoError(t, err)
	assert.Equal(t, "artisan", resp.TemplateName)
}

func TestGenerateWebsiteRejectedGate(t *testing.T) {
	creatorID := seedCreator(t)
	submissionID := seedSubmission(t, creatorID, "carinderia", consts.SubmissionStatusRejected)
	identity := &auth.Identity{CreatorID: creatorID, Role: consts.RoleCreator}

	_, err := newCommand().Execute(context.Background(), submissionID, &dto.GenerateWebsiteRequest{}, identity)
	var validation errs.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestGenerateWebsiteUnknownTemplate(t *testing.T) {
	creatorID := seedCreator(t)
	submissionID := seedSubmission(t, creatorID, "carinderia", consts.SubmissionStatusApproved)
	identity := &auth.Identity{CreatorID: creatorID, Role: consts.RoleCreator}
	pin := "no-such-template"

	_, err := newCommand().Execute(context.Background(), submissionID, &dto.GenerateWebsiteRequest{TemplateName: &pin}, identity)
	var validation errs.ValidationError
	require.ErrorAs(t, err, &validation)

	// nothing persisted for the failed attempt
	var count int
	require.NoError(t, testinfra.Pool.QueryRow(context.Background(),
		"SELECT count(*) FROM negosyo.generated_websites WHERE submission_id = $1", submissionID).Scan(&count))
	assert.Zero(t, count)
}

func TestGenerateWebsiteOtherCreatorForbidden(t *testing.T) {
	creatorID := seedCreator(t)
	otherID := seedCreator(t)
	submissionID := seedSubmission(t, creatorID, "carinderia", consts.SubmissionStatusApproved)

	_, err := newCommand().Execute(context.Background(), submissionID, &dto.GenerateWebsiteRequest{},
		&auth.Identity{CreatorID: otherID, Role: consts.RoleCreator})
	var permissions errs.PermissionsError
	require.ErrorAs(t, err, &permissions)
}
