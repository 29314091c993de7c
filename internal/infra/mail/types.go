package mail

type MailType string

const (
	SubmissionApproved MailType = "SubmissionApproved"
	SitePublished      MailType = "SitePublished"
	PayoutCredited     MailType = "PayoutCredited"
)

type MailData interface {
	GetMailType() MailType
	GetSubject() string
}

// SubmissionApprovedData notifies the business owner their onboarding was
// approved.
type SubmissionApprovedData struct {
	OwnerName    string
	BusinessName string
	CreatorName  string
	Year         string
}

func (s SubmissionApprovedData) GetMailType() MailType {
	return SubmissionApproved
}

func (s SubmissionApprovedData) GetSubject() string {
	return "Your business listing was approved!"
}

type SitePublishedData struct {
	OwnerName    string
	BusinessName string
	SiteURL      string
	Year         string
}

func (s SitePublishedData) GetMailType() MailType {
	return SitePublished
}

func (s SitePublishedData) GetSubject() string {
	return "Your website is now live!"
}

type PayoutCreditedData struct {
	CreatorFirstName string
	BusinessName     string
	Amount           string
	NewBalance       string
	Year             string
}

func (s PayoutCreditedData) GetMailType() MailType {
	return PayoutCredited
}

func (s PayoutCreditedData) GetSubject() string {
	return "Your payout was credited"
}
