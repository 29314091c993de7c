package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/application/events"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/mail"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
)

type MarkInReview struct {
	uowFactory *dbs.UOWFactory
}

func NewMarkInReview(factory *dbs.UOWFactory) *MarkInReview {
	return &MarkInReview{uowFactory: factory}
}

func (c *MarkInReview) Execute(ctx context.Context, submissionID uint64, identity *auth.Identity) error {
	if err := identity.RequireAdmin(); err != nil {
		return err
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	sub, err := repo.NewSubmissionRepo(tx).GetForUpdate(ctx, submissionID)
	if err != nil {
		return err
	}
	if !consts.CanMarkInReview(sub.Status) {
		return errs.ValidationError{Err: fmt.Errorf("submission %d cannot enter review from status %s", submissionID, sub.Status)}
	}
	return repo.NewSubmissionRepo(tx).UpdateStatus(ctx, submissionID, consts.SubmissionStatusInReview)
}

type Approve struct {
	uowFactory *dbs.UOWFactory
}

func NewApprove(factory *dbs.UOWFactory) *Approve {
	return &Approve{uowFactory: factory}
}

// Execute approves a submission and queues the owner notification through the
// outbox, so the mail only goes out if the transition commits.
func (c *Approve) Execute(ctx context.Context, submissionID uint64, identity *auth.Identity) error {
	if err := identity.RequireAdmin(); err != nil {
		return err
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	sub, err := repo.NewSubmissionRepo(tx).GetForUpdate(ctx, submissionID)
	if err != nil {
		return err
	}
	if !consts.CanApprove(sub.Status) {
		return errs.ValidationError{Err: fmt.Errorf("submission %d cannot be approved from status %s", submissionID, sub.Status)}
	}
	if err = repo.NewSubmissionRepo(tx).UpdateStatus(ctx, submissionID, consts.SubmissionStatusApproved); err != nil {
		return err
	}

	creator, err := repo.NewCreatorRepo(tx).GetByID(ctx, sub.CreatorID)
	if err != nil {
		return err
	}
	if sub.OwnerEmail == "" {
		return nil
	}
	data := mail.SubmissionApprovedData{
		OwnerName:    sub.OwnerName,
		BusinessName: sub.BusinessName,
		CreatorName:  creator.FirstName,
		Year:         fmt.Sprint(time.Now().Year()),
	}
	return repo.NewEventRepo(tx).InsertEvent(ctx, events.SendMail{
		Recipient: sub.OwnerEmail,
		Subject:   data.GetSubject(),
		Data:      data,
	})
}

type Reject struct {
	uowFactory *dbs.UOWFactory
}

func NewReject(factory *dbs.UOWFactory) *Reject {
	return &Reject{uowFactory: factory}
}

func (c *Reject) Execute(ctx context.Context, submissionID uint64, identity *auth.Identity) error {
	if err := identity.RequireAdmin(); err != nil {
		return err
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	sub, err := repo.NewSubmissionRepo(tx).GetForUpdate(ctx, submissionID)
	if err != nil {
		return err
	}
	if consts.IsTerminal(sub.Status) {
		return errs.ValidationError{Err: fmt.Errorf("submission %d is already settled and cannot be rejected", submissionID)}
	}
	return repo.NewSubmissionRepo(tx).UpdateStatus(ctx, submissionID, consts.SubmissionStatusRejected)
}
