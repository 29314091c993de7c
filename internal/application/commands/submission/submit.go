package submission

import (
	"context"
	"fmt"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
)

const minPhotos = 3

type Submit struct {
	uowFactory *dbs.UOWFactory
}

func NewSubmit(factory *dbs.UOWFactory) *Submit {
	return &Submit{uowFactory: factory}
}

// Execute moves a draft into the review queue. The completeness checks run
// here, not on field updates, so creators can save partial drafts freely.
func (c *Submit) Execute(ctx context.Context, submissionID uint64, identity *auth.Identity) error {
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
	if sub.Status != consts.SubmissionStatusDraft && sub.Status != consts.SubmissionStatusRejected {
		return errs.ValidationError{Err: fmt.Errorf("submission %d cannot be submitted from status %s", submissionID, sub.Status)}
	}
	if len(sub.Photos) < minPhotos {
		return errs.ValidationError{Err: fmt.Errorf("at least %d photos are required, got %d", minPhotos, len(sub.Photos))}
	}
	if sub.VideoURL == nil && sub.AudioURL == nil {
		return errs.ValidationError{Err: fmt.Errorf("a video or audio recording of the owner interview is required")}
	}
	if !sub.AgreedToTerms {
		return errs.ValidationError{Err: fmt.Errorf("the business owner must agree to the terms before submitting")}
	}

	return repo.NewSubmissionRepo(tx).UpdateStatus(ctx, submissionID, consts.SubmissionStatusSubmitted)
}
