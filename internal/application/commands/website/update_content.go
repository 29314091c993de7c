package website

import (
	"context"
	"fmt"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/domain/content"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	"github.com/Negosyo-Digital/platform-backend/internal/render"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
)

type UpdateContent struct {
	uowFactory *dbs.UOWFactory
}

func NewUpdateContent(factory *dbs.UOWFactory) *UpdateContent {
	return &UpdateContent{uowFactory: factory}
}

// Execute replaces the editable content model and re-renders the stored html
// in the same transaction, so the page never drifts from its content.
func (c *UpdateContent) Execute(ctx context.Context, submissionID uint64, req *dto.UpdateWebsiteContentRequest, identity *auth.Identity) error {
	if req.Content == nil {
		return errs.ValidationError{Err: fmt.Errorf("content body is required")}
	}

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

	html, err := render.Render(w.TemplateName, content.Source{Normalized: req.Content},
		db.RawMessageToMap(w.Customizations), sub.Photos)
	if err != nil {
		return err
	}
	if err = websiteRepo.SaveContent(ctx, w.ID, req.Content); err != nil {
		return err
	}
	_, err = websiteRepo.Upsert(ctx, db.GeneratedWebsite{
		SubmissionID:   submissionID,
		TemplateName:   w.TemplateName,
		HTML:           html,
		Customizations: w.Customizations,
		Status:         consts.WebsiteStatusDraft,
	})
	return err
}
