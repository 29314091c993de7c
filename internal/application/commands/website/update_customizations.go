package website

import (
	"context"
	"fmt"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	"github.com/Negosyo-Digital/platform-backend/internal/render"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
)

type UpdateCustomizations struct {
	uowFactory *dbs.UOWFactory
}

func NewUpdateCustomizations(factory *dbs.UOWFactory) *UpdateCustomizations {
	return &UpdateCustomizations{uowFactory: factory}
}

func (c *UpdateCustomizations) Execute(ctx context.Context, submissionID uint64, req *dto.UpdateCustomizationsRequest, identity *auth.Identity) error {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	sub, err := repo.NewSubmissionRepo(tx).GetByID(ctx, submissionID)
	if err != nil {
		return err
	}
	if sub.CreatorID != identity.CreatorID && !identity.IsAdmin() {
		return errs.PermissionsError{Err: fmt.Errorf("user requesting action is not the submission's creator")}
	}

	websiteRepo := repo.NewWebsiteRepo(tx)
	w, err := websiteRepo.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		return err
	}

	merged := db.RawMessageToMap(w.Customizations)
	for k, v := range req.Customizations {
		if v == "" {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}

	src, err := websiteRepo.GetContent(ctx, w)
	if err != nil {
		return err
	}
	html, err := render.Render(w.TemplateName, src, merged, sub.Photos)
	if err != nil {
		return err
	}
	_, err = websiteRepo.Upsert(ctx, db.GeneratedWebsite{
		SubmissionID:   submissionID,
		TemplateName:   w.TemplateName,
		HTML:           html,
		Customizations: db.MapToRawMessage(merged),
		Status:         consts.WebsiteStatusDraft,
	})
	return err
}
