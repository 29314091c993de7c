package publish

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/application/events"
	"github.com/Negosyo-Digital/platform-backend/internal/application/interfaces"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/hosting"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/mail"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
	"github.com/google/uuid"
)

const indexPath = "/index.html"

type PublishSite struct {
	uowFactory *dbs.UOWFactory
	hosting    interfaces.Hosting
	baseDomain string
}

func NewPublishSite(factory *dbs.UOWFactory, host interfaces.Hosting, baseDomain string) *PublishSite {
	return &PublishSite{uowFactory: factory, hosting: host, baseDomain: baseDomain}
}

// Execute pushes the rendered site to the hosting provider. The site record is
// committed in its own transaction before the deploy starts, so a crashed or
// failed deploy leaves a reusable site id behind and the retry picks it up
// instead of claiming another subdomain.
func (c *PublishSite) Execute(ctx context.Context, submissionID uint64, identity *auth.Identity) (*dto.PublishResponse, error) {
	if err := identity.RequireAdmin(); err != nil {
		return nil, err
	}

	site, website, sub, err := c.ensureSite(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	hash := sha1.Sum([]byte(website.HTML))
	digest := hex.EncodeToString(hash[:])
	deploy, err := c.hosting.Deploy(ctx, site.ID, map[string]string{indexPath: digest})
	if err != nil {
		return nil, err
	}
	for _, required := range deploy.Required {
		if required != digest {
			continue
		}
		if err := c.hosting.UploadFile(ctx, deploy.ID, indexPath, []byte(website.HTML)); err != nil {
			return nil, err
		}
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	now := time.Now()
	if err = repo.NewWebsiteRepo(tx).SetPublished(ctx, website.ID, site.ID, site.URL, now); err != nil {
		return nil, err
	}
	if err = repo.NewSubmissionRepo(tx).SetPublicURL(ctx, submissionID, &site.URL); err != nil {
		return nil, err
	}

	if sub.OwnerEmail != "" {
		data := mail.SitePublishedData{
			OwnerName:    sub.OwnerName,
			BusinessName: sub.BusinessName,
			SiteURL:      site.URL,
			Year:         fmt.Sprint(now.Year()),
		}
		if err = repo.NewEventRepo(tx).InsertEvent(ctx, events.SendMail{
			Recipient: sub.OwnerEmail,
			Subject:   data.GetSubject(),
			Data:      data,
		}); err != nil {
			return nil, err
		}
	}

	return &dto.PublishResponse{PublishedURL: site.URL}, nil
}

// ensureSite resolves or creates the remote site and persists its id before
// any deploy traffic. A stored id whose URL no longer sits under the expected
// domain is re-resolved against the provider.
func (c *PublishSite) ensureSite(ctx context.Context, submissionID uint64) (site *hosting.Site, website *db.GeneratedWebsite, sub *db.Submission, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, nil, nil, err
	}
	defer uow.Finalize(&err)

	sub, err = repo.NewSubmissionRepo(tx).GetForUpdate(ctx, submissionID)
	if err != nil {
		return nil, nil, nil, err
	}
	websiteRepo := repo.NewWebsiteRepo(tx)
	website, err = websiteRepo.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, nil, nil, err
	}
	if website.HTML == "" {
		err = errs.ValidationError{Err: fmt.Errorf("submission %d has no rendered website to publish", submissionID)}
		return nil, nil, nil, err
	}

	if website.SiteID != nil {
		site, err = c.hosting.GetSite(ctx, *website.SiteID)
		if err == nil && strings.Contains(site.URL, c.baseDomain) {
			return site, website, sub, nil
		}
		var notFound errs.NotFoundError
		if err != nil && !errors.As(err, &notFound) {
			return nil, nil, nil, err
		}
		// stored id is stale, claim a fresh site below
		err = nil
	}

	slug := Slugify(sub.BusinessName)
	site, err = c.hosting.CreateSite(ctx, slug)
	if errors.Is(err, hosting.ErrNameTaken) {
		site, err = c.hosting.CreateSite(ctx, slug+"-"+uuid.NewString()[:6])
	}
	if err != nil {
		return nil, nil, nil, err
	}
	if err = websiteRepo.SetSiteID(ctx, website.ID, site.ID); err != nil {
		return nil, nil, nil, err
	}
	return site, website, sub, nil
}
