package ai

import (
	"context"
	"fmt"

	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/application/interfaces"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
)

type Transcribe struct {
	uowFactory  *dbs.UOWFactory
	transcriber interfaces.Transcriber
}

func NewTranscribe(factory *dbs.UOWFactory, transcriber interfaces.Transcriber) *Transcribe {
	return &Transcribe{uowFactory: factory, transcriber: transcriber}
}

// Execute runs speech-to-text over the owner interview. Audio wins over video
// when both were uploaded. The transcription call runs outside any
// transaction; only the result is written.
func (c *Transcribe) Execute(ctx context.Context, submissionID uint64, identity *auth.Identity) (*dto.TranscribeResponse, error) {
	mediaURL, err := c.mediaURL(ctx, submissionID, identity)
	if err != nil {
		return nil, err
	}

	transcript, err := c.transcriber.Transcribe(ctx, mediaURL)
	if err != nil {
		return nil, err
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	if err = repo.NewSubmissionRepo(tx).SetTranscript(ctx, submissionID, transcript); err != nil {
		return nil, err
	}
	return &dto.TranscribeResponse{SubmissionID: submissionID, Transcript: transcript}, nil
}

func (c *Transcribe) mediaURL(ctx context.Context, submissionID uint64, identity *auth.Identity) (string, error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return "", err
	}
	defer uow.Finalize(&err)

	sub, err := repo.NewSubmissionRepo(tx).GetByID(ctx, submissionID)
	if err != nil {
		return "", err
	}
	if sub.CreatorID != identity.CreatorID && !identity.IsAdmin() {
		return "", errs.PermissionsError{Err: fmt.Errorf("user requesting action is not the submission's creator")}
	}
	switch {
	case sub.AudioURL != nil && *sub.AudioURL != "":
		return *sub.AudioURL, nil
	case sub.VideoURL != nil && *sub.VideoURL != "":
		return *sub.VideoURL, nil
	}
	return "", errs.ValidationError{Err: fmt.Errorf("submission %d has no interview recording to transcribe", submissionID)}
}
