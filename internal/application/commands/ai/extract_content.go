package ai

import (
	"context"
	"fmt"

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

type ExtractContent struct {
	uowFactory *dbs.UOWFactory
	extractor  interfaces.ContentExtractor
}

func NewExtractContent(factory *dbs.UOWFactory, extractor interfaces.ContentExtractor) *ExtractContent {
	return &ExtractContent{uowFactory: factory, extractor: extractor}
}

// Execute turns the interview transcript into structured content and stores it
// as the website's editable model. The LLM call runs between two short
// transactions so no database connection sits idle for its duration.
func (c *ExtractContent) Execute(ctx context.Context, submissionID uint64, identity *auth.Identity) (*dto.ExtractContentResponse, error) {
	sub, err := c.loadSubmission(ctx, submissionID, identity)
	if err != nil {
		return nil, err
	}

	extracted, err := c.extractor.ExtractContent(ctx, *sub.Transcript)
	if err != nil {
		return nil, err
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	websiteRepo := repo.NewWebsiteRepo(tx)
	websiteID, err := websiteRepo.EnsureForSubmission(ctx, submissionID, render.ByBusinessType(sub.BusinessType).Name)
	if err != nil {
		return nil, err
	}
	if err = websiteRepo.SaveContent(ctx, websiteID, content.FromBusiness(sub.BusinessName, *extracted)); err != nil {
		return nil, err
	}

	return &dto.ExtractContentResponse{SubmissionID: submissionID, Content: *extracted}, nil
}

func (c *ExtractContent) loadSubmission(ctx context.Context, submissionID uint64, identity *auth.Identity) (*db.Submission, error) {
	uow := c.uowFactory.GetUoW()
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
	if sub.Transcript == nil || *sub.Transcript == "" {
		return nil, errs.ValidationError{Err: fmt.Errorf("submission %d has no transcript, run transcription first", submissionID)}
	}
	return sub, nil
}
