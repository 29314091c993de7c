package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
)

type UpdateSubmission struct {
	uowFactory *dbs.UOWFactory
}

func NewUpdateSubmission(factory *dbs.UOWFactory) *UpdateSubmission {
	return &UpdateSubmission{uowFactory: factory}
}

// Execute lets the owning creator fill in business details and media while the
// case is still editable. Financial fields are admin-only.
func (c *UpdateSubmission) Execute(ctx context.Context, submissionID uint64, req *dto.UpdateSubmissionRequest, identity *auth.Identity) error {
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
	if !identity.IsAdmin() && sub.Status != consts.SubmissionStatusDraft && sub.Status != consts.SubmissionStatusRejected {
		return errs.ValidationError{Err: fmt.Errorf("submission %d is not editable in status %s", submissionID, sub.Status)}
	}
	if (req.Amount != nil || req.CreatorPayout != nil) && !identity.IsAdmin() {
		return errs.PermissionsError{Err: fmt.Errorf("monetary fields can only be set by an admin")}
	}

	_, err = tx.Exec(ctx, `UPDATE negosyo.submissions SET
			business_name = COALESCE($1, business_name),
			business_type = COALESCE($2, business_type),
			owner_name = COALESCE($3, owner_name),
			owner_phone = COALESCE($4, owner_phone),
			owner_email = COALESCE($5, owner_email),
			address = COALESCE($6, address),
			city = COALESCE($7, city),
			photos = COALESCE($8, photos),
			video_url = COALESCE($9, video_url),
			audio_url = COALESCE($10, audio_url),
			transcript = COALESCE($11, transcript),
			amount = COALESCE($12, amount),
			creator_payout = COALESCE($13, creator_payout),
			agreed_to_terms = COALESCE($14, agreed_to_terms),
			updated_at = $15
		WHERE id = $16`,
		req.BusinessName, req.BusinessType, req.OwnerName, req.OwnerPhone, req.OwnerEmail,
		req.Address, req.City, req.Photos, req.VideoURL, req.AudioURL, req.Transcript,
		req.Amount, req.CreatorPayout, req.AgreedToTerms, time.Now(), submissionID)
	return err
}
