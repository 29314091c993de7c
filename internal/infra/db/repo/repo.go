package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/domain/content"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db"
	shared "github.com/Negosyo-Digital/platform-backend/pkg/interfaces"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const submissionColumns = `id, creator_id, business_name, business_type, owner_name, owner_phone, owner_email,
	address, city, photos, video_url, audio_url, transcript, status, amount, creator_payout, agreed_to_terms,
	public_url, payment_session_id, paid_at, payout_requested_at, creator_paid_at, created_at, updated_at`

type SubmissionRepo struct {
	tx pgx.Tx
}

func NewSubmissionRepo(tx pgx.Tx) *SubmissionRepo {
	return &SubmissionRepo{tx: tx}
}

func (r *SubmissionRepo) scanSubmission(row pgx.Row) (*db.Submission, error) {
	var s db.Submission
	err := row.Scan(&s.ID, &s.CreatorID, &s.BusinessName, &s.BusinessType, &s.OwnerName, &s.OwnerPhone,
		&s.OwnerEmail, &s.Address, &s.City, &s.Photos, &s.VideoURL, &s.AudioURL, &s.Transcript, &s.Status,
		&s.Amount, &s.CreatorPayout, &s.AgreedToTerms, &s.PublicURL, &s.PaymentSessionID, &s.PaidAt,
		&s.PayoutRequestedAt, &s.CreatorPaidAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	// old rows may still carry the "completed" alias
	s.Status = consts.NormalizeSubmissionStatus(s.Status)
	return &s, nil
}

func (r *SubmissionRepo) GetByID(ctx context.Context, id uint64) (*db.Submission, error) {
	query := fmt.Sprintf("SELECT %s FROM negosyo.submissions WHERE id = $1", submissionColumns)
	s, err := r.scanSubmission(r.tx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFoundError{Entity: "submission", ID: strconv.FormatUint(id, 10)}
	}
	return s, err
}

// GetForUpdate locks the submission row for the rest of the transaction.
func (r *SubmissionRepo) GetForUpdate(ctx context.Context, id uint64) (*db.Submission, error) {
	query := fmt.Sprintf("SELECT %s FROM negosyo.submissions WHERE id = $1 FOR UPDATE", submissionColumns)
	s, err := r.scanSubmission(r.tx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFoundError{Entity: "submission", ID: strconv.FormatUint(id, 10)}
	}
	return s, err
}

func (r *SubmissionRepo) ListByCreator(ctx context.Context, creatorID *uuid.UUID, status *consts.SubmissionStatus) ([]db.Submission, error) {
	query := fmt.Sprintf("SELECT %s FROM negosyo.submissions WHERE ($1::uuid IS NULL OR creator_id = $1) "+
		"AND ($2::text IS NULL OR status = $2) ORDER BY created_at DESC", submissionColumns)
	rows, err := r.tx.Query(ctx, query, creatorID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []db.Submission
	for rows.Next() {
		s, err := r.scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, *s)
	}
	return submissions, rows.Err()
}

func (r *SubmissionRepo) UpdateStatus(ctx context.Context, id uint64, status consts.SubmissionStatus) error {
	_, err := r.tx.Exec(ctx, "UPDATE negosyo.submissions SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now(), id)
	return err
}

func (r *SubmissionRepo) SetTranscript(ctx context.Context, id uint64, transcript string) error {
	_, err := r.tx.Exec(ctx, "UPDATE negosyo.submissions SET transcript = $1, updated_at = $2 WHERE id = $3",
		transcript, time.Now(), id)
	return err
}

func (r *SubmissionRepo) SetPublicURL(ctx context.Context, id uint64, url *string) error {
	_, err := r.tx.Exec(ctx, "UPDATE negosyo.submissions SET public_url = $1, updated_at = $2 WHERE id = $3",
		url, time.Now(), id)
	return err
}

type CreatorRepo struct {
	tx pgx.Tx
}

func NewCreatorRepo(tx pgx.Tx) *CreatorRepo {
	return &CreatorRepo{tx: tx}
}

func (r *CreatorRepo) GetByID(ctx context.Context, id uuid.UUID) (*db.Creator, error) {
	var c db.Creator
	err := r.tx.QueryRow(ctx, `SELECT id, first_name, last_name, email, phone, referral_code, referred_by,
		balance, total_earnings, status, role, payout_method, payout_detail, created_at, updated_at
		FROM negosyo.creators WHERE id = $1`, id).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.ReferralCode, &c.ReferredBy,
		&c.Balance, &c.TotalEarnings, &c.Status, &c.Role, &c.PayoutMethod, &c.PayoutDetail,
		&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFoundError{Entity: "creator", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CreatorRepo) GetByReferralCode(ctx context.Context, code string) (*db.Creator, error) {
	var c db.Creator
	err := r.tx.QueryRow(ctx, "SELECT id, referral_code FROM negosyo.creators WHERE referral_code = $1", code).
		Scan(&c.ID, &c.ReferralCode)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFoundError{Entity: "creator", ID: code}
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Credit adds the payout to balance and lifetime earnings in one statement.
// The row lock taken here serializes concurrent credits for the same creator,
// so two mark-paid calls can never interleave a read-modify-write.
func (r *CreatorRepo) Credit(ctx context.Context, creatorID uuid.UUID, amount int64) (int64, int64, error) {
	if amount < 0 {
		return 0, 0, errs.ConsistencyError{Err: fmt.Errorf("negative payout %d for creator %s", amount, creatorID)}
	}
	var id uuid.UUID
	if err := r.tx.QueryRow(ctx, "SELECT id FROM negosyo.creators WHERE id = $1 FOR UPDATE", creatorID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, errs.NotFoundError{Entity: "creator", ID: creatorID.String()}
		}
		return 0, 0, err
	}

	var balance, totalEarnings int64
	err := r.tx.QueryRow(ctx, `UPDATE negosyo.creators
		SET balance = balance + $1, total_earnings = total_earnings + $1, updated_at = $2
		WHERE id = $3 RETURNING balance, total_earnings`,
		amount, time.Now(), creatorID).Scan(&balance, &totalEarnings)
	if err != nil {
		return 0, 0, err
	}
	if balance > totalEarnings {
		return 0, 0, errs.ConsistencyError{Err: fmt.Errorf("balance %d exceeds total earnings %d for creator %s",
			balance, totalEarnings, creatorID)}
	}
	return balance, totalEarnings, nil
}

type WebsiteRepo struct {
	tx pgx.Tx
}

func NewWebsiteRepo(tx pgx.Tx) *WebsiteRepo {
	return &WebsiteRepo{tx: tx}
}

const websiteColumns = `id, submission_id, template_name, html, customizations, legacy_content, status,
	site_id, published_url, published_at, created_at, updated_at`

func (r *WebsiteRepo) scanWebsite(row pgx.Row) (*db.GeneratedWebsite, error) {
	var w db.GeneratedWebsite
	err := row.Scan(&w.ID, &w.SubmissionID, &w.TemplateName, &w.HTML, &w.Customizations, &w.LegacyContent,
		&w.Status, &w.SiteID, &w.PublishedURL, &w.PublishedAt, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WebsiteRepo) GetBySubmissionID(ctx context.Context, submissionID uint64) (*db.GeneratedWebsite, error) {
	query := fmt.Sprintf("SELECT %s FROM negosyo.generated_websites WHERE submission_id = $1", websiteColumns)
	w, err := r.scanWebsite(r.tx.QueryRow(ctx, query, submissionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFoundError{Entity: "website", ID: strconv.FormatUint(submissionID, 10)}
	}
	return w, err
}

// Upsert writes the website keyed by submission id. Regeneration reuses the
// existing row; the one-to-one constraint lives in the unique index.
func (r *WebsiteRepo) Upsert(ctx context.Context, w db.GeneratedWebsite) (uint64, error) {
	var id uint64
	err := r.tx.QueryRow(ctx, `INSERT INTO negosyo.generated_websites
		(submission_id, template_name, html, customizations, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$6)
		ON CONFLICT (submission_id) DO UPDATE SET
			template_name = EXCLUDED.template_name,
			html = EXCLUDED.html,
			customizations = EXCLUDED.customizations,
			updated_at = EXCLUDED.updated_at
		RETURNING id`,
		w.SubmissionID, w.TemplateName, w.HTML, w.Customizations, w.Status, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("err upserting website, %v", err)
	}
	return id, nil
}

// EnsureForSubmission creates an empty website row when none exists yet,
// leaving any previously rendered html untouched. Used when content arrives
// before the first render.
func (r *WebsiteRepo) EnsureForSubmission(ctx context.Context, submissionID uint64, templateName string) (uint64, error) {
	var id uint64
	err := r.tx.QueryRow(ctx, `INSERT INTO negosyo.generated_websites
		(submission_id, template_name, html, customizations, status, created_at, updated_at)
		VALUES ($1,$2,'','{}',$3,$4,$4)
		ON CONFLICT (submission_id) DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING id`,
		submissionID, templateName, consts.WebsiteStatusDraft, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("err ensuring website row, %v", err)
	}
	return id, nil
}

func (r *WebsiteRepo) SetPublished(ctx context.Context, websiteID uint64, siteID, publishedURL string, publishedAt time.Time) error {
	_, err := r.tx.Exec(ctx, `UPDATE negosyo.generated_websites
		SET status = $1, site_id = $2, published_url = $3, published_at = $4, updated_at = $4
		WHERE id = $5`,
		consts.WebsiteStatusPublished, siteID, publishedURL, publishedAt, websiteID)
	return err
}

func (r *WebsiteRepo) SetSiteID(ctx context.Context, websiteID uint64, siteID string) error {
	_, err := r.tx.Exec(ctx, "UPDATE negosyo.generated_websites SET site_id = $1, updated_at = $2 WHERE id = $3",
		siteID, time.Now(), websiteID)
	return err
}

// ClearPublishing reverts the website to draft and drops the external
// linkage. Used by unpublish even when the remote delete failed, so a dead
// site never pins a stuck published flag.
func (r *WebsiteRepo) ClearPublishing(ctx context.Context, websiteID uint64) error {
	_, err := r.tx.Exec(ctx, `UPDATE negosyo.generated_websites
		SET status = $1, site_id = NULL, published_url = NULL, published_at = NULL, updated_at = $2
		WHERE id = $3`,
		consts.WebsiteStatusDraft, time.Now(), websiteID)
	return err
}

func (r *WebsiteRepo) SaveContent(ctx context.Context, websiteID uint64, wc *content.WebsiteContent) error {
	payload, err := json.Marshal(wc)
	if err != nil {
		return fmt.Errorf("err marshalling website content, %v", err)
	}
	_, err = r.tx.Exec(ctx, `INSERT INTO negosyo.website_contents (website_id, content, updated_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (website_id) DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at`,
		websiteID, payload, time.Now())
	return err
}

// GetContent returns the content source for rendering: the normalized model
// when one exists, otherwise the legacy blob carried on the website row.
func (r *WebsiteRepo) GetContent(ctx context.Context, w *db.GeneratedWebsite) (content.Source, error) {
	var payload json.RawMessage
	err := r.tx.QueryRow(ctx, "SELECT content FROM negosyo.website_contents WHERE website_id = $1", w.ID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return content.Source{Legacy: w.LegacyContent}, nil
	}
	if err != nil {
		return content.Source{}, err
	}
	var wc content.WebsiteContent
	if err := json.Unmarshal(payload, &wc); err != nil {
		return content.Source{}, fmt.Errorf("err decoding website content, %v", err)
	}
	return content.Source{Normalized: &wc}, nil
}

type EventRepo struct {
	tx pgx.Tx
}

func NewEventRepo(tx pgx.Tx) *EventRepo {
	return &EventRepo{tx: tx}
}

func (e *EventRepo) InsertEvent(ctx context.Context, event shared.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("err marshalling event payload, %v", err)
	}
	outbox := db.Outbox{
		Event:     event.GetType(),
		Status:    int(consts.NotProcessed),
		Payload:   json.RawMessage(payload),
		CreatedAt: time.Now(),
	}
	_, err = e.tx.Exec(ctx, "INSERT INTO negosyo.outbox (event, status, payload, created_at) VALUES ($1,$2,$3,$4)",
		outbox.Event, outbox.Status, outbox.Payload, outbox.CreatedAt)
	if err != nil {
		return fmt.Errorf("err inserting a new event, %v", err)
	}
	return nil
}
