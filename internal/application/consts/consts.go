package consts

type SubmissionStatus string

const (
	SubmissionStatusDraft            SubmissionStatus = "draft"
	SubmissionStatusSubmitted        SubmissionStatus = "submitted"
	SubmissionStatusInReview         SubmissionStatus = "in_review"
	SubmissionStatusApproved         SubmissionStatus = "approved"
	SubmissionStatusRejected         SubmissionStatus = "rejected"
	SubmissionStatusWebsiteGenerated SubmissionStatus = "website_generated"
	SubmissionStatusPendingPayment   SubmissionStatus = "pending_payment"
	SubmissionStatusPaid             SubmissionStatus = "paid"

	// legacy alias, accepted on reads only
	SubmissionStatusCompleted SubmissionStatus = "completed"
)

// NormalizeSubmissionStatus folds legacy aliases into their canonical form.
// Old records carry "completed" where "paid" is meant; it is never written back.
func NormalizeSubmissionStatus(s SubmissionStatus) SubmissionStatus {
	if s == SubmissionStatusCompleted {
		return SubmissionStatusPaid
	}
	return s
}

// IsTerminal reports whether no further transition may leave the status.
func IsTerminal(s SubmissionStatus) bool {
	return NormalizeSubmissionStatus(s) == SubmissionStatusPaid
}

// CanGenerateWebsite reports whether a website may be rendered for a submission
// in the given status. Generation is re-entrant, so every post-approval status
// qualifies; anything still in review or rejected does not.
func CanGenerateWebsite(s SubmissionStatus) bool {
	switch NormalizeSubmissionStatus(s) {
	case SubmissionStatusApproved, SubmissionStatusWebsiteGenerated,
		SubmissionStatusPendingPayment, SubmissionStatusPaid:
		return true
	}
	return false
}

// CanApprove reports whether approval is allowed from the given status.
func CanApprove(s SubmissionStatus) bool {
	switch NormalizeSubmissionStatus(s) {
	case SubmissionStatusSubmitted, SubmissionStatusInReview:
		return true
	}
	return false
}

// CanMarkInReview reports whether the submission can be picked up for review.
func CanMarkInReview(s SubmissionStatus) bool {
	switch NormalizeSubmissionStatus(s) {
	case SubmissionStatusSubmitted, SubmissionStatusInReview:
		return true
	}
	return false
}

// CanMarkPaid reports whether the creator payout may be credited. The business
// payment may or may not have been collected through checkout first.
func CanMarkPaid(s SubmissionStatus) bool {
	switch NormalizeSubmissionStatus(s) {
	case SubmissionStatusApproved, SubmissionStatusWebsiteGenerated, SubmissionStatusPendingPayment:
		return true
	}
	return false
}

type WebsiteStatus string

const (
	WebsiteStatusDraft     WebsiteStatus = "draft"
	WebsiteStatusPublished WebsiteStatus = "published"
)

type CreatorStatus string

const (
	CreatorStatusPending   CreatorStatus = "pending"
	CreatorStatusActive    CreatorStatus = "active"
	CreatorStatusSuspended CreatorStatus = "suspended"
)

type Role string

const (
	RoleCreator Role = "creator"
	RoleAdmin   Role = "admin"
)

type OutboxStatus int

const (
	NotProcessed OutboxStatus = iota
	Processed
	Processing
	InError
)
