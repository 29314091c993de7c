package payout

import (
	"context"
	"fmt"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/application/events"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/mail"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
)

type MarkPaid struct {
	uowFactory *dbs.UOWFactory
}

func NewMarkPaid(factory *dbs.UOWFactory) *MarkPaid {
	return &MarkPaid{uowFactory: factory}
}

// Execute settles one submission: the creator payout is credited to the
// creator's balance and the submission becomes paid, atomically. Calling it
// again on a paid submission is a conflict, never a double credit.
func (c *MarkPaid) Execute(ctx context.Context, submissionID uint64, identity *auth.Identity) (*dto.MarkPaidResponse, error) {
	if err := identity.RequireAdmin(); err != nil {
		return nil, err
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	sub, err := repo.NewSubmissionRepo(tx).GetForUpdate(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if consts.IsTerminal(sub.Status) {
		return nil, errs.ConflictError{Err: fmt.Errorf("submission %d is already paid", submissionID)}
	}
	if !consts.CanMarkPaid(sub.Status) {
		return nil, errs.ValidationError{Err: fmt.Errorf("submission %d cannot be paid out from status %s", submissionID, sub.Status)}
	}

	creatorRepo := repo.NewCreatorRepo(tx)
	balance, totalEarnings, err := creatorRepo.Credit(ctx, sub.CreatorID, sub.CreatorPayout)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	_, err = tx.Exec(ctx, `UPDATE negosyo.submissions
		SET status = $1, paid_at = COALESCE(paid_at, $2), creator_paid_at = $2, updated_at = $2
		WHERE id = $3`,
		consts.SubmissionStatusPaid, now, submissionID)
	if err != nil {
		return nil, err
	}

	creator, err := creatorRepo.GetByID(ctx, sub.CreatorID)
	if err != nil {
		return nil, err
	}
	if creator.Email != "" {
		data := mail.PayoutCreditedData{
			CreatorFirstName: creator.FirstName,
			BusinessName:     sub.BusinessName,
			Amount:           formatCentavos(sub.CreatorPayout),
			NewBalance:       formatCentavos(balance),
			Year:             fmt.Sprint(now.Year()),
		}
		if err = repo.NewEventRepo(tx).InsertEvent(ctx, events.SendMail{
			Recipient: creator.Email,
			Subject:   data.GetSubject(),
			Data:      data,
		}); err != nil {
			return nil, err
		}
	}

	return &dto.MarkPaidResponse{
		SubmissionID:     submissionID,
		NewBalance:       balance,
		NewTotalEarnings: totalEarnings,
	}, nil
}

// formatCentavos renders a centavo amount as pesos for mail copy.
func formatCentavos(amount int64) string {
	return fmt.Sprintf("₱%d.%02d", amount/100, amount%100)
}
