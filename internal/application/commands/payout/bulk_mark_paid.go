package payout

import (
	"context"
	"errors"
	"fmt"

	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
)

type BulkMarkPaid struct {
	markPaid *MarkPaid
}

func NewBulkMarkPaid(factory *dbs.UOWFactory) *BulkMarkPaid {
	return &BulkMarkPaid{markPaid: NewMarkPaid(factory)}
}

// Execute settles a batch of submissions, each in its own transaction. One bad
// id never rolls back its neighbours; the per-item result says what happened.
func (c *BulkMarkPaid) Execute(ctx context.Context, req *dto.BulkMarkPaidRequest, identity *auth.Identity) (*dto.BulkMarkPaidResponse, error) {
	if err := identity.RequireAdmin(); err != nil {
		return nil, err
	}
	if len(req.SubmissionIDs) == 0 {
		return nil, errs.ValidationError{Err: fmt.Errorf("no submission ids given")}
	}

	resp := &dto.BulkMarkPaidResponse{}
	for _, id := range req.SubmissionIDs {
		item := dto.BulkMarkPaidItem{SubmissionID: id, Status: "paid"}
		if _, err := c.markPaid.Execute(ctx, id, identity); err != nil {
			item.Status = classify(err)
			item.Error = err.Error()
		}
		resp.Results = append(resp.Results, item)
	}
	return resp, nil
}

func classify(err error) string {
	var conflict errs.ConflictError
	var notFound errs.NotFoundError
	var validation errs.ValidationError
	switch {
	case errors.As(err, &conflict):
		return "already_paid"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &validation):
		return "invalid_status"
	}
	return "error"
}
