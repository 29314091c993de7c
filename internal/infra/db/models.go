package db

import (
	"encoding/json"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/google/uuid"
)

type Creator struct {
	ID            uuid.UUID            `db:"id"`
	FirstName     string               `db:"first_name"`
	LastName      string               `db:"last_name"`
	Email         string               `db:"email"`
	Phone         string               `db:"phone"`
	ReferralCode  string               `db:"referral_code"`
	ReferredBy    *uuid.UUID           `db:"referred_by"`
	Balance       int64                `db:"balance"`
	TotalEarnings int64                `db:"total_earnings"`
	Status        consts.CreatorStatus `db:"status"`
	Role          consts.Role          `db:"role"`
	PayoutMethod  string               `db:"payout_method"`
	PayoutDetail  string               `db:"payout_detail"`
	CreatedAt     time.Time            `db:"created_at"`
	UpdatedAt     time.Time            `db:"updated_at"`
}

type Submission struct {
	ID                uint64                  `db:"id"`
	CreatorID         uuid.UUID               `db:"creator_id"`
	BusinessName      string                  `db:"business_name"`
	BusinessType      string                  `db:"business_type"`
	OwnerName         string                  `db:"owner_name"`
	OwnerPhone        string                  `db:"owner_phone"`
	OwnerEmail        string                  `db:"owner_email"`
	Address           string                  `db:"address"`
	City              string                  `db:"city"`
	Photos            []string                `db:"photos"`
	VideoURL          *string                 `db:"video_url"`
	AudioURL          *string                 `db:"audio_url"`
	Transcript        *string                 `db:"transcript"`
	Status            consts.SubmissionStatus `db:"status"`
	Amount            int64                   `db:"amount"`
	CreatorPayout     int64                   `db:"creator_payout"`
	AgreedToTerms     bool                    `db:"agreed_to_terms"`
	PublicURL         *string                 `db:"public_url"`
	PaymentSessionID  *string                 `db:"payment_session_id"`
	PaidAt            *time.Time              `db:"paid_at"`
	PayoutRequestedAt *time.Time              `db:"payout_requested_at"`
	CreatorPaidAt     *time.Time              `db:"creator_paid_at"`
	CreatedAt         time.Time               `db:"created_at"`
	UpdatedAt         time.Time               `db:"updated_at"`
}

type GeneratedWebsite struct {
	ID             uint64               `db:"id"`
	SubmissionID   uint64               `db:"submission_id"`
	TemplateName   string               `db:"template_name"`
	HTML           string               `db:"html"`
	Customizations json.RawMessage      `db:"customizations"`
	LegacyContent  json.RawMessage      `db:"legacy_content"`
	Status         consts.WebsiteStatus `db:"status"`
	SiteID         *string              `db:"site_id"`
	PublishedURL   *string              `db:"published_url"`
	PublishedAt    *time.Time           `db:"published_at"`
	CreatedAt      time.Time            `db:"created_at"`
	UpdatedAt      time.Time            `db:"updated_at"`
}

type Outbox struct {
	ID        uint64          `db:"id"`
	Event     string          `db:"event"`
	Status    int             `db:"status"`
	Payload   json.RawMessage `db:"payload"`
	CreatedAt time.Time       `db:"created_at"`
}

type Mail struct {
	ID         uint64    `db:"id"`
	MailType   string    `db:"type"`
	Recipients string    `db:"recipients"`
	Subject    string    `db:"subject"`
	Content    string    `db:"content"`
	SentAt     time.Time `db:"sent_at"`
}

type File struct {
	ID        uuid.UUID `db:"id"`
	URL       string    `db:"url"`
	CreatedAt time.Time `db:"created_at"`
}
