package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
)

type CreateSubmission struct {
	uowFactory *dbs.UOWFactory
}

func NewCreateSubmission(factory *dbs.UOWFactory) *CreateSubmission {
	return &CreateSubmission{uowFactory: factory}
}

func (c *CreateSubmission) Execute(ctx context.Context, req *dto.CreateSubmissionRequest, identity *auth.Identity) (uint64, error) {
	if req.BusinessName == "" {
		return 0, errs.ValidationError{Err: fmt.Errorf("business name is required")}
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return 0, err
	}
	defer uow.Finalize(&err)

	var submissionID uint64
	err = tx.QueryRow(ctx, `INSERT INTO negosyo.submissions
		(creator_id, business_name, business_type, owner_name, owner_phone, owner_email, address, city,
		 photos, status, amount, creator_payout, agreed_to_terms, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,'{}',$9,0,0,false,$10,$10) RETURNING id`,
		identity.CreatorID, req.BusinessName, req.BusinessType, req.OwnerName, req.OwnerPhone,
		req.OwnerEmail, req.Address, req.City, consts.SubmissionStatusDraft, time.Now()).Scan(&submissionID)
	if err != nil {
		return 0, fmt.Errorf("insert failed: %v", err)
	}

	return submissionID, nil
}
