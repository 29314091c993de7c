package query

import (
	"context"
	"fmt"

	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
	"github.com/google/uuid"
)

type GetCreator struct {
	*dbs.UOWFactory
}

func NewGetCreator(factory *dbs.UOWFactory) *GetCreator {
	return &GetCreator{factory}
}

func (c *GetCreator) Query(ctx context.Context, creatorID uuid.UUID, identity *auth.Identity) (*dto.GetCreatorResponse, error) {
	if creatorID != identity.CreatorID && !identity.IsAdmin() {
		return nil, errs.PermissionsError{Err: fmt.Errorf("creators may only read their own profile")}
	}

	uow := c.UOWFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	creator, err := repo.NewCreatorRepo(tx).GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	return &dto.GetCreatorResponse{
		CreatorID:     creator.ID.String(),
		FirstName:     creator.FirstName,
		LastName:      creator.LastName,
		Email:         creator.Email,
		ReferralCode:  creator.ReferralCode,
		Status:        string(creator.Status),
		Role:          string(creator.Role),
		Balance:       creator.Balance,
		TotalEarnings: creator.TotalEarnings,
	}, nil
}
