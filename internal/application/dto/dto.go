package dto

import (
	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/domain/content"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateCreatorRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	ReferralCode string `json:"referralCode,omitempty"`
	PayoutMethod string `json:"payoutMethod,omitempty"`
	PayoutDetail string `json:"payoutDetail,omitempty"`
}

type CreateCreatorResponse struct {
	CreatorID    string `json:"creatorId"`
	ReferralCode string `json:"referralCode"`
}

type UpdateCreatorStatusRequest struct {
	NewStatus string `json:"newStatus"`
}

type GetCreatorResponse struct {
	CreatorID     string `json:"creatorId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	ReferralCode  string `json:"referralCode"`
	Status        string `json:"status"`
	Role          string `json:"role"`
	Balance       int64  `json:"balance"`
	TotalEarnings int64  `json:"totalEarnings"`
}

type CreateSubmissionRequest struct {
	BusinessName string `json:"businessName"`
	BusinessType string `json:"businessType"`
	OwnerName    string `json:"ownerName"`
	OwnerPhone   string `json:"ownerPhone"`
	OwnerEmail   string `json:"ownerEmail"`
	Address      string `json:"address"`
	City         string `json:"city"`
}

type CreateSubmissionResponse struct {
	SubmissionID uint64 `json:"submissionId"`
}

type UpdateSubmissionRequest struct {
	BusinessName  *string   `json:"businessName,omitempty"`
	BusinessType  *string   `json:"businessType,omitempty"`
	OwnerName     *string   `json:"ownerName,omitempty"`
	OwnerPhone    *string   `json:"ownerPhone,omitempty"`
	OwnerEmail    *string   `json:"ownerEmail,omitempty"`
	Address       *string   `json:"address,omitempty"`
	City          *string   `json:"city,omitempty"`
	Photos        *[]string `json:"photos,omitempty"`
	VideoURL      *string   `json:"videoUrl,omitempty"`
	AudioURL      *string   `json:"audioUrl,omitempty"`
	Transcript    *string   `json:"transcript,omitempty"`
	Amount        *int64    `json:"amount,omitempty"`
	CreatorPayout *int64    `json:"creatorPayout,omitempty"`
	AgreedToTerms *bool     `json:"agreedToTerms,omitempty"`
}

type SubmissionResponse struct {
	SubmissionID  uint64                  `json:"submissionId"`
	CreatorID     string                  `json:"creatorId"`
	BusinessName  string                  `json:"businessName"`
	BusinessType  string                  `json:"businessType"`
	OwnerName     string                  `json:"ownerName"`
	OwnerPhone    string                  `json:"ownerPhone"`
	OwnerEmail    string                  `json:"ownerEmail"`
	Address       string                  `json:"address"`
	City          string                  `json:"city"`
	Photos        []string                `json:"photos"`
	VideoURL      string                  `json:"videoUrl,omitempty"`
	AudioURL      string                  `json:"audioUrl,omitempty"`
	Transcript    string                  `json:"transcript,omitempty"`
	Status        consts.SubmissionStatus `json:"status"`
	Amount        int64                   `json:"amount"`
	CreatorPayout int64                   `json:"creatorPayout"`
	PublicURL     string                  `json:"publicUrl,omitempty"`
	PaidAt        string                  `json:"paidAt,omitempty"`
	CreatorPaidAt string                  `json:"creatorPaidAt,omitempty"`
	CreatedAt     string                  `json:"createdAt"`
}

type ListSubmissionsResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
}

type TranscribeResponse struct {
	SubmissionID uint64 `json:"submissionId"`
	Transcript   string `json:"transcript"`
}

type ExtractContentResponse struct {
	SubmissionID uint64                  `json:"submissionId"`
	Content      content.BusinessContent `json:"content"`
}

type GenerateWebsiteRequest struct {
	TemplateName   *string           `json:"templateName,omitempty"`
	Customizations map[string]string `json:"customizations,omitempty"`
}

type GenerateWebsiteResponse struct {
	WebsiteID    uint64 `json:"websiteId"`
	TemplateName string `json:"templateName"`
}

type UpdateWebsiteContentRequest struct {
	Content *content.WebsiteContent `json:"content"`
}

type UpdateCustomizationsRequest struct {
	Customizations map[string]string `json:"customizations"`
}

type WebsiteResponse struct {
	WebsiteID      uint64                  `json:"websiteId"`
	SubmissionID   uint64                  `json:"submissionId"`
	TemplateName   string                  `json:"templateName"`
	Status         consts.WebsiteStatus    `json:"status"`
	Customizations map[string]string       `json:"customizations"`
	Content        *content.WebsiteContent `json:"content,omitempty"`
	HTML           string                  `json:"html,omitempty"`
	SiteID         string                  `json:"siteId,omitempty"`
	PublishedURL   string                  `json:"publishedUrl,omitempty"`
	PublishedAt    string                  `json:"publishedAt,omitempty"`
}

type PublishResponse struct {
	PublishedURL string `json:"publishedUrl"`
}

type UnpublishResponse struct {
	DeleteFailed bool `json:"deleteFailed"`
}

type MarkPaidResponse struct {
	SubmissionID     uint64 `json:"submissionId"`
	NewBalance       int64  `json:"newBalance"`
	NewTotalEarnings int64  `json:"newTotalEarnings"`
}

type BulkMarkPaidRequest struct {
	SubmissionIDs []uint64 `json:"submissionIds"`
}

type BulkMarkPaidItem struct {
	SubmissionID uint64 `json:"submissionId"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
}

type BulkMarkPaidResponse struct {
	Results []BulkMarkPaidItem `json:"results"`
}

type FileUploadedResponse struct {
	FileID  string `json:"fileId"`
	FileURL string `json:"fileUrl"`
}

type CreatePaymentRequest struct {
	SubmissionID uint64 `json:"submissionId"`
}

type CreatePaymentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type TemplateDescriptorResponse struct {
	Name        string         `json:"name"`
	Label       string         `json:"label"`
	SuitableFor []string       `json:"suitableFor"`
	Sections    map[string]int `json:"sections"`
}

type ListTemplatesResponse struct {
	Templates []TemplateDescriptorResponse `json:"templates"`
}
