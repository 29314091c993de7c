package creator

import (
	"context"
	"fmt"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
	"github.com/google/uuid"
)

type UpdateCreatorStatus struct {
	uowFactory *dbs.UOWFactory
}

func NewUpdateCreatorStatus(factory *dbs.UOWFactory) *UpdateCreatorStatus {
	return &UpdateCreatorStatus{uowFactory: factory}
}

func (c *UpdateCreatorStatus) Execute(ctx context.Context, creatorID uuid.UUID, newStatus string, identity *auth.Identity) error {
	if err := identity.RequireAdmin(); err != nil {
		return err
	}
	status := consts.CreatorStatus(newStatus)
	switch status {
	case consts.CreatorStatusPending, consts.CreatorStatusActive, consts.CreatorStatusSuspended:
	default:
		return errs.ValidationError{Err: fmt.Errorf("unknown creator status %q", newStatus)}
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	if _, err = repo.NewCreatorRepo(tx).GetByID(ctx, creatorID); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, "UPDATE negosyo.creators SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now(), creatorID)
	return err
}
