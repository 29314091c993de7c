package creator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
	"github.com/google/uuid"
)

type CreateCreator struct {
	uowFactory *dbs.UOWFactory
}

func NewCreateCreator(factory *dbs.UOWFactory) *CreateCreator {
	return &CreateCreator{uowFactory: factory}
}

func (c *CreateCreator) Execute(ctx context.Context, req *dto.CreateCreatorRequest) (*dto.CreateCreatorResponse, error) {
	if req.FirstName == "" || req.Email == "" {
		return nil, errs.ValidationError{Err: fmt.Errorf("first name and email are required")}
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	newCreator := db.Creator{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		ReferralCode: newReferralCode(),
		Status:       consts.CreatorStatusPending,
		Role:         consts.RoleCreator,
		PayoutMethod: req.PayoutMethod,
		PayoutDetail: req.PayoutDetail,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if req.ReferralCode != "" {
		var referrer *db.Creator
		referrer, err = repo.NewCreatorRepo(tx).GetByReferralCode(ctx, req.ReferralCode)
		if err != nil {
			err = errs.ValidationError{Err: fmt.Errorf("unknown referral code %q", req.ReferralCode)}
			return nil, err
		}
		newCreator.ReferredBy = &referrer.ID
	}

	_, err = tx.Exec(ctx, `INSERT INTO negosyo.creators
		(id, first_name, last_name, email, phone, referral_code, referred_by, balance, total_earnings,
		 status, role, payout_method, payout_detail, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,0,0,$8,$9,$10,$11,$12,$13)`,
		newCreator.ID, newCreator.FirstName, newCreator.LastName, newCreator.Email, newCreator.Phone,
		newCreator.ReferralCode, newCreator.ReferredBy, newCreator.Status, newCreator.Role,
		newCreator.PayoutMethod, newCreator.PayoutDetail, newCreator.CreatedAt, newCreator.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert failed: %v", err)
	}

	return &dto.CreateCreatorResponse{
		CreatorID:    newCreator.ID.String(),
		ReferralCode: newCreator.ReferralCode,
	}, nil
}

func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
