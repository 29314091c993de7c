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

type GetWebsite struct {
	*dbs.UOWFactory
}

func NewGetWebsite(factory *dbs.UOWFactory) *GetWebsite {
	return &GetWebsite{factory}
}

// Query returns the website for a submission, including the editable content
// model and, when asked, the rendered html.
func (c *GetWebsite) Query(ctx context.Context, submissionID uint64, includeHTML bool, identity *auth.Identity) (*dto.WebsiteResponse, error) {
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

	websiteRepo := repo.NewWebsiteRepo(tx)
	w, err := websiteRepo.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	src, err := websiteRepo.GetContent(ctx, w)
	if err != nil {
		return nil, err
	}
	wc, err := src.Normalize()
	if err != nil {
		return nil, err
	}

	resp := &dto.WebsiteResponse{
		WebsiteID:      w.ID,
		SubmissionID:   w.SubmissionID,
		TemplateName:   w.TemplateName,
		Status:         w.Status,
		Customizations: db.RawMessageToMap(w.Customizations),
		Content:        wc,
	}
	if includeHTML {
		resp.HTML = w.HTML
	}
	if w.SiteID != nil {
		resp.SiteID = *w.SiteID
	}
	if w.PublishedURL != nil {
		resp.PublishedURL = *w.PublishedURL
	}
	if w.PublishedAt != nil {
		resp.PublishedAt = w.PublishedAt.Format(time.RFC3339)
	}
	return resp, nil
}
