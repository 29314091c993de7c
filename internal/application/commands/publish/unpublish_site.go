package publish

import (
	"context"
	"log/slog"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/interfaces"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
)

type UnpublishSite struct {
	uowFactory *dbs.UOWFactory
	hosting    interfaces.Hosting
}

func NewUnpublishSite(factory *dbs.UOWFactory, host interfaces.Hosting) *UnpublishSite {
	return &UnpublishSite{uowFactory: factory, hosting: host}
}

// Execute takes the site down. Local state is cleared even when the remote
// delete fails, so the platform never claims a site is live that it cannot
// reach; the caller is told about the leftover remote site.
func (c *UnpublishSite) Execute(ctx context.Context, submissionID uint64, identity *auth.Identity) (*dto.UnpublishResponse, error) {
	if err := identity.RequireAdmin(); err != nil {
		return nil, err
	}

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
	websiteRepo := repo.NewWebsiteRepo(tx)
	website, err := websiteRepo.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	deleteFailed := false
	if website.SiteID != nil {
		if delErr := c.hosting.DeleteSite(ctx, *website.SiteID); delErr != nil {
			slog.Warn("remote site delete failed, clearing local state anyway",
				"submissionID", submissionID, "siteID", *website.SiteID, "err", delErr)
			deleteFailed = true
		}
	}

	if err = websiteRepo.ClearPublishing(ctx, website.ID); err != nil {
		return nil, err
	}
	if err = repo.NewSubmissionRepo(tx).SetPublicURL(ctx, submissionID, nil); err != nil {
		return nil, err
	}
	if sub.Status == consts.SubmissionStatusWebsiteGenerated {
		if err = repo.NewSubmissionRepo(tx).UpdateStatus(ctx, submissionID, consts.SubmissionStatusApproved); err != nil {
			return nil, err
		}
	}

	return &dto.UnpublishResponse{DeleteFailed: deleteFailed}, nil
}
