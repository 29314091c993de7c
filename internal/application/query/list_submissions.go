package query

import (
	"context"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
	"github.com/google/uuid"
)

type ListSubmissions struct {
	*dbs.UOWFactory
}

func NewListSubmissions(factory *dbs.UOWFactory) *ListSubmissions {
	return &ListSubmissions{factory}
}

// Query lists submissions, newest first. Creators only ever see their own;
// admins may filter by creator and status.
func (c *ListSubmissions) Query(ctx context.Context, creatorFilter *uuid.UUID, statusFilter *consts.SubmissionStatus, identity *auth.Identity) (*dto.ListSubmissionsResponse, error) {
	if !identity.IsAdmin() {
		creatorFilter = &identity.CreatorID
	}

	uow := c.UOWFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	submissions, err := repo.NewSubmissionRepo(tx).ListByCreator(ctx, creatorFilter, statusFilter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListSubmissionsResponse{Submissions: make([]dto.SubmissionResponse, 0, len(submissions))}
	for i := range submissions {
		resp.Submissions = append(resp.Submissions, MapSubmissionToResponse(&submissions[i]))
	}
	return resp, nil
}
