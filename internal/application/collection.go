package application

import (
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands"
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands/ai"
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands/creator"
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands/file"
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands/payment"
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands/payout"
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands/publish"
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands/submission"
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands/website"
	"github.com/Negosyo-Digital/platform-backend/internal/application/query"
)

// Collection aggregates every command and query the HTTP surface dispatches to.
type Collection struct {
	*creator.CreateCreator
	*creator.UpdateCreatorStatus
	*submission.CreateSubmission
	*submission.UpdateSubmission
	*submission.Submit
	*submission.MarkInReview
	*submission.Approve
	*submission.Reject
	*ai.Transcribe
	*ai.ExtractContent
	*website.GenerateWebsite
	*website.UpdateContent
	*website.UpdateCustomizations
	*publish.PublishSite
	*publish.UnpublishSite
	*payout.MarkPaid
	*payout.BulkMarkPaid
	*payout.RequestPayout
	*file.UploadFile
	*payment.Payment
	*query.GetCreator
	*query.GetSubmission
	*query.ListSubmissions
	*query.GetWebsite
	*query.ListTemplates
}

// Processors handle outbox events off the request path.
type Processors struct {
	SendMail *commands.SendMail
}
