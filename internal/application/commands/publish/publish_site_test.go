package publish

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/hosting"
	"github.com/Negosyo-Digital/platform-backend/internal/testinfra"
	"github.com/Negosyo-Digital/platform-backend/pkg/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubHosting fakes the deploy provider in-memory.
type stubHosting struct {
	sites      map[string]*hosting.Site
	taken      map[string]bool
	uploads    []string
	deployErr  error
	deleteErr  error
	createErrs int
}

func newStubHosting() *stubHosting {
	return &stubHosting{sites: map[string]*hosting.Site{}, taken: map[string]bool{}}
}

func (s *stubHosting) CreateSite(ctx context.Context, name string) (*hosting.Site, error) {
	if s.taken[name] {
		return nil, hosting.ErrNameTaken
	}
	site := &hosting.Site{
		ID:   "site-" + name,
		Name: name,
		URL:  fmt.Sprintf("https://%s.netlify.app", name),
	}
	s.sites[site.ID] = site
	return site, nil
}

func (s *stubHosting) GetSite(ctx context.Context, siteID string) (*hosting.Site, error) {
	if site, ok := s.sites[siteID]; ok {
		return site, nil
	}
	return nil, errs.NotFoundError{Entity: "site", ID: siteID}
}

func (s *stubHosting) Deploy(ctx context.Context, siteID string, files map[string]string) (*hosting.Deploy, error) {
	if s.deployErr != nil {
		return nil, s.deployErr
	}
	required := make([]string, 0, len(files))
	for _, digest := range files {
		required = append(required, digest)
	}
	return &hosting.Deploy{ID: "deploy-1", Required: required}, nil
}

func (s *stubHosting) UploadFile(ctx context.Context, deployID, path string, body []byte) error {
	s.uploads = append(s.uploads, path)
	return nil
}

func (s *stubHosting) DeleteSite(ctx context.Context, siteID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.sites, siteID)
	return nil
}

func adminIdentity() *auth.Identity {
	return &auth.Identity{CreatorID: uuid.New(), Role: consts.RoleAdmin}
}

func seedPublishable(t *testing.T, businessName string) uint64 {
	t.Helper()
	creatorID := uuid.New()
	_, err := testinfra.Pool.Exec(context.Background(), `INSERT INTO negosyo.creators
		(id, first_name, last_name, email, referral_code, status, role, created_at, updated_at)
		VALUES ($1, 'Ana', 'Cruz', 'ana@example.com', $2, 'active', 'creator', now(), now())`,
		creatorID, uuid.NewString()[:8])
	require.NoError(t, err)

	var submissionID uint64
	err = testinfra.Pool.QueryRow(context.Background(), `INSERT INTO negosyo.submissions
		(creator_id, business_name, owner_email, owner_name, status, created_at, updated_at)
		VALUES ($1, $2, 'owner@example.com', 'Owner', $3, now(), now()) RETURNING id`,
		creatorID, businessName, consts.SubmissionStatusWebsiteGenerated).Scan(&submissionID)
	require.NoError(t, err)

	_, err = testinfra.Pool.Exec(context.Background(), `INSERT INTO negosyo.generated_websites
		(submission_id, template_name, html, customizations, status, created_at, updated_at)
		VALUES ($1, 'essentials', '<html>site</html>', '{}', 'draft', now(), now())`, submissionID)
	require.NoError(t, err)
	return submissionID
}

func TestPublishSite(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	host := newStubHosting()
	submissionID := seedPublishable(t, "Aling Nena's Carinderia")

	resp, err := NewPublishSite(factory, host, "netlify.app").Execute(context.Background(), submissionID, adminIdentity())
	require.NoError(t, err)
	assert.Equal(t, "https://aling-nena-s-carinderia.netlify.app", resp.PublishedURL)
	assert.Equal(t, []string{"/index.html"}, host.uploads)

	var status consts.WebsiteStatus
	var publishedURL, publicURL *string
	err = testinfra.Pool.QueryRow(context.Background(), `SELECT w.status, w.published_url, s.public_url
		FROM negosyo.generated_websites w JOIN negosyo.submissions s ON s.id = w.submission_id
		WHERE w.submission_id = $1`, submissionID).Scan(&status, &publishedURL, &publicURL)
	require.NoError(t, err)
	assert.Equal(t, consts.WebsiteStatusPublished, status)
	require.NotNil(t, publishedURL)
	assert.Equal(t, resp.PublishedURL, *publishedURL)
	require.NotNil(t, publicURL)
	assert.Equal(t, resp.PublishedURL, *publicURL)

	var mails int
	require.NoError(t, testinfra.Pool.QueryRow(context.Background(),
		"SELECT count(*) FROM negosyo.outbox WHERE payload->>'Recipient' = 'owner@example.com'").Scan(&mails))
	assert.GreaterOrEqual(t, mails, 1)
}

func TestPublishSiteNameCollision(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	host := newStubHosting()
	host.taken["kape-express"] = true
	submissionID := seedPublishable(t, "Kape Express")

	resp, err := NewPublishSite(factory, host, "netlify.app").Execute(context.Background(), submissionID, adminIdentity())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.PublishedURL, "https://kape-express-"))
}

func TestPublishSiteDeployFailureLeavesDraft(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	host := newStubHosting()
	host.deployErr = errs.UpstreamError{Service: "hosting", Err: errors.New("deploy exploded")}
	submissionID := seedPublishable(t, "Sablay Store")

	_, err := NewPublishSite(factory, host, "netlify.app").Execute(context.Background(), submissionID, adminIdentity())
	require.Error(t, err)

	var status consts.WebsiteStatus
	var siteID *string
	var publicURL *string
	err = testinfra.Pool.QueryRow(context.Background(), `SELECT w.status, w.site_id, s.public_url
		FROM negosyo.generated_websites w JOIN negosyo.submissions s ON s.id = w.submission_id
		WHERE w.submission_id = $1`, submissionID).Scan(&status, &siteID, &publicURL)
	require.NoError(t, err)
	assert.Equal(t, consts.WebsiteStatusDraft, status)
	assert.Nil(t, publicURL)
	// the claimed site id survives for the retry
	assert.NotNil(t, siteID)
}

func TestPublishSiteRetryReusesSite(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	host := newStubHosting()
	host.deployErr = errs.UpstreamError{Service: "hosting", Err: errors.New("first try fails")}
	submissionID := seedPublishable(t, "Retry Cafe")
	cmd := NewPublishSite(factory, host, "netlify.app")

	_, err := cmd.Execute(context.Background(), submissionID, adminIdentity())
	require.Error(t, err)

	host.deployErr = nil
	resp, err := cmd.Execute(context.Background(), submissionID, adminIdentity())
	require.NoError(t, err)
	assert.Equal(t, "https://retry-cafe.netlify.app", resp.PublishedURL)
	assert.Len(t, host.sites, 1)
}

func TestPublishSiteRequiresRenderedHTML(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	submissionID := seedPublishable(t, "No HTML Yet")
	_, err := testinfra.Pool.Exec(context.Background(),
		"UPDATE negosyo.generated_websites SET html = '' WHERE submission_id = $1", submissionID)
	require.NoError(t, err)

	_, err = NewPublishSite(factory, newStubHosting(), "netlify.app").Execute(context.Background(), submissionID, adminIdentity())
	var validation errs.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestUnpublishSite(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	host := newStubHosting()
	submissionID := seedPublishable(t, "Takedown Tindahan")

	_, err := NewPublishSite(factory, host, "netlify.app").Execute(context.Background(), submissionID, adminIdentity())
	require.NoError(t, err)

	resp, err := NewUnpublishSite(factory, host).Execute(context.Background(), submissionID, adminIdentity())
	require.NoError(t, err)
	assert.False(t, resp.DeleteFailed)

	var wStatus consts.WebsiteStatus
	var sStatus consts.SubmissionStatus
	var publicURL *string
	err = testinfra.Pool.QueryRow(context.Background(), `SELECT w.status, s.status, s.public_url
		FROM negosyo.generated_websites w JOIN negosyo.submissions s ON s.id = w.submission_id
		WHERE w.submission_id = $1`, submissionID).Scan(&wStatus, &sStatus, &publicURL)
	require.NoError(t, err)
	assert.Equal(t, consts.WebsiteStatusDraft, wStatus)
	assert.Equal(t, consts.SubmissionStatusApproved, sStatus)
	assert.Nil(t, publicURL)
	assert.Empty(t, host.sites)
}

func TestUnpublishSiteRemoteFailureStillClears(t *testing.T) {
	factory := db.NewUoWFactory(testinfra.Pool)
	host := newStubHosting()
	submissionID := seedPublishable(t, "Stubborn Site")

	_, err := NewPublishSite(factory, host, "netlify.app").Execute(context.Background(), submissionID, adminIdentity())
	require.NoError(t, err)

	host.deleteErr = errs.UpstreamError{Service: "hosting", Err: errors.New("api down")}
	resp, err := NewUnpublishSite(factory, host).Execute(context.Background(), submissionID, adminIdentity())
	require.NoError(t, err)
	assert.True(t, resp.DeleteFailed)

	var wStatus consts.WebsiteStatus
	require.NoError(t, testinfra.Pool.QueryRow(context.Background(),
		"SELECT status FROM negosyo.generated_websites WHERE submission_id = $1", submissionID).Scan(&wStatus))
	assert.Equal(t, consts.WebsiteStatusDraft, wStatus)
}
