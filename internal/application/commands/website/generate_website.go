package website

import (
	"context"
	"errors"
	"fmt"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/application/interfaces"
	"github.com/Negosyo-Digital/platform-backend/internal/domain/content"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	"github.com/Negosyo-Digital/platform-backend/internal/render"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
)

type GenerateWebsite struct {
	uowFactory *dbs.UOWFactory
	locker     interfaces.GenerationLocker
}

func NewGenerateWebsite(factory *dbs.UOWFactory, locker interfaces.GenerationLocker) *GenerateWebsite {
	return &GenerateWebsite{uowFactory: factory, locker: locker}
}

// Execute renders (or re-renders) the website for an approved submission.
// Generation is serialized per submission through the lock; a second caller
// gets a conflict instead of racing the render.
func (c *GenerateWebsite) Execute(ctx context.Context, submissionID uint64, req *dto.GenerateWebsiteRequest, identity *auth.Identity) (*dto.GenerateWebsiteResponse, error) {
	release, ok, err := c.locker.Acquire(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ConflictError{Err: fmt.Errorf("website generation already in progress for submission %d", submissionID)}
	}
	defer release()

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	sub, err := repo.NewSubmissionRepo(tx).GetForUpdate(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.CreatorID != identity.CreatorID && !identity.IsAdmin() {
		return nil, errs.PermissionsError{Err: fmt.Errorf("user requesting action is not the submission's creator")}
	}
	if !consts.CanGenerateWebsite(sub.Status) {
		return nil, errs.ValidationError{Err: fmt.Errorf("submission %d is not approved for generation (status %s)", submissionID, sub.Status)}
	}

	websiteRepo := repo.NewWebsiteRepo(tx)
	existing, err := websiteRepo.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		var notFound errs.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		existing, err = nil, nil
	}

	templateName := resolveTemplate(req, existing, sub)
	customizations := mergeCustomizations(existing, req.Customizations)

	src, seeded, err := resolveContent(ctx, websiteRepo, existing, sub)
	if err != nil {
		return nil, err
	}

	html, err := render.Render(templateName, src, customizations, sub.Photos)
	if err != nil {
		return nil, err
	}

	websiteID, err := websiteRepo.Upsert(ctx, db.GeneratedWebsite{
		SubmissionID:   submissionID,
		TemplateName:   templateName,
		HTML:           html,
		Customizations: db.MapToRawMessage(customizations),
		Status:         consts.WebsiteStatusDraft,
	})
	if err != nil {
		return nil, err
	}
	if seeded {
		if err = websiteRepo.SaveContent(ctx, websiteID, src.Normalized); err != nil {
			return nil, err
		}
	}

	if sub.Status == consts.SubmissionStatusApproved {
		if err = repo.NewSubmissionRepo(tx).UpdateStatus(ctx, submissionID, consts.SubmissionStatusWebsiteGenerated); err != nil {
			return nil, err
		}
	}

	return &dto.GenerateWebsiteResponse{WebsiteID: websiteID, TemplateName: templateName}, nil
}

// resolveTemplate keeps a regenerated site on its current template unless the
// request pins one explicitly. First-time generation matches on business type.
func resolveTemplate(req *dto.GenerateWebsiteRequest, existing *db.GeneratedWebsite, sub *db.Submission) string {
	if req.TemplateName != nil && *req.TemplateName != "" {
		return *req.TemplateName
	}
	if existing != nil {
		return existing.TemplateName
	}
	return render.ByBusinessType(sub.BusinessType).Name
}

func mergeCustomizations(existing *db.GeneratedWebsite, overrides map[string]string) map[string]string {
	merged := make(map[string]string)
	if existing != nil {
		merged = db.RawMessageToMap(existing.Customizations)
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// resolveContent prefers previously edited content; a first render seeds the
// editable model from what the creator captured on the submission itself.
func resolveContent(ctx context.Context, websiteRepo *repo.WebsiteRepo, existing *db.GeneratedWebsite, sub *db.Submission) (content.Source, bool, error) {
	if existing != nil {
		src, err := websiteRepo.GetContent(ctx, existing)
		if err != nil {
			return content.Source{}, false, err
		}
		if src.Normalized != nil || len(src.Legacy) > 0 {
			return src, false, nil
		}
	}
	seed := &content.WebsiteContent{
		BusinessName: sub.BusinessName,
		Contact: content.Contact{
			Phone:   sub.OwnerPhone,
			Email:   sub.OwnerEmail,
			Address: sub.Address,
		},
	}
	return content.Source{Normalized: seed}, true, nil
}
