package query

import (
	"context"
	"fmt"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
)

type GetSubmission struct {
	*dbs.UOWFactory
}

func NewGetSubmission(factory *dbs.UOWFactory) *GetSubmission {
	return &GetSubmission{factory}
}

func (c *GetSubmission) Query(ctx context.Context, submissionID uint64, identity *auth.Identity) (*dto.SubmissionResponse, error) {
	uow := c.UOWFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	sub, err := repo.NewSubmissionRepo(tx).GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.CreatorID != identity.CreatorID && !identity.IsAdmin() {
		return nil, errs.PermissionsError{Err: fmt.Errorf("user requesting action is not the submission's creator")}
	}
	resp := MapSubmissionToResponse(sub)
	return &resp, nil
}

// MapSubmissionToResponse flattens nullable columns into the wire shape.
func MapSubmissionToResponse(sub *db.Submission) dto.SubmissionResponse {
	resp := dto.SubmissionResponse{
		SubmissionID:  sub.ID,
		CreatorID:     sub.CreatorID.String(),
		BusinessName:  sub.BusinessName,
		BusinessType:  sub.BusinessType,
		OwnerName:     sub.OwnerName,
		OwnerPhone:    sub.OwnerPhone,
		OwnerEmail:    sub.OwnerEmail,
		Address:       sub.Address,
		City:          sub.City,
		Photos:        sub.Photos,
		Status:        sub.Status,
		Amount:        sub.Amount,
		CreatorPayout: sub.CreatorPayout,
		CreatedAt:     sub.CreatedAt.Format(time.RFC3339),
	}
	if sub.VideoURL != nil {
		resp.VideoURL = *sub.VideoURL
	}
	if sub.AudioURL != nil {
		resp.AudioURL = *sub.AudioURL
	}
	if sub.Transcript != nil {
		resp.Transcript = *sub.Transcript
	}
	if sub.PublicURL != nil {
		resp.PublicURL = *sub.PublicURL
	}
	if sub.PaidAt != nil {
		resp.PaidAt = sub.PaidAt.Format(time.RFC3339)
	}
	if sub.CreatorPaidAt != nil {
		resp.CreatorPaidAt = sub.CreatorPaidAt.Format(time.RFC3339)
	}
	return resp
}
