package payout

import (
	"context"
	"fmt"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
)

type RequestPayout struct {
	uowFactory *dbs.UOWFactory
}

func NewRequestPayout(factory *dbs.UOWFactory) *RequestPayout {
	return &RequestPayout{uowFactory: factory}
}

// Execute records that the creator asked for their earnings on a settled-work
// submission. Idempotent: the first request timestamp sticks.
func (c *RequestPayout) Execute(ctx context.Context, submissionID uint64, identity *auth.Identity) error {
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
	if sub.CreatorID != identity.CreatorID && !identity.IsAdmin() {
		return errs.PermissionsError{Err: fmt.Errorf("user requesting action is not the submission's creator")}
	}
	if !consts.CanMarkPaid(sub.Status) && !consts.IsTerminal(sub.Status) {
		return errs.ValidationError{Err: fmt.Errorf("submission %d has no payout to request in status %s", submissionID, sub.Status)}
	}

	_, err = tx.Exec(ctx, `UPDATE negosyo.submissions
		SET payout_requested_at = COALESCE(payout_requested_at, $1), updated_at = $1
		WHERE id = $2`, time.Now(), submissionID)
	return err
}
