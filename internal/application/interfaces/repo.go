package interfaces

import (
	"context"
	"io"

	"github.com/Negosyo-Digital/platform-backend/internal/domain/content"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/hosting"
	shared "github.com/Negosyo-Digital/platform-backend/pkg/interfaces"
)

type EventRepo interface {
	InsertEvent(ctx context.Context, event shared.Event) error
}

// Hosting is the deploy provider contract. The concrete client lives in
// infra/hosting; commands depend on this so tests can substitute a stub.
type Hosting interface {
	CreateSite(ctx context.Context, name string) (*hosting.Site, error)
	GetSite(ctx context.Context, siteID string) (*hosting.Site, error)
	Deploy(ctx context.Context, siteID string, files map[string]string) (*hosting.Deploy, error)
	UploadFile(ctx context.Context, deployID, path string, body []byte) error
	DeleteSite(ctx context.Context, siteID string) error
}

// ContentExtractor turns an interview transcript into structured business
// content.
type ContentExtractor interface {
	ExtractContent(ctx context.Context, transcript string) (*content.BusinessContent, error)
}

// Transcriber produces a plain-text transcript from an audio/video URL.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaURL string) (string, error)
}

type ObjectStorage interface {
	UploadFile(ctx context.Context, key string, contentType *string, body io.Reader) (string, error)
}

// GenerationLocker guards concurrent regeneration of the same submission. The
// release func must be called once rendering is persisted; the lock expires on
// its own after the staleness timeout so an aborted attempt can't wedge a
// submission in "generating" forever.
type GenerationLocker interface {
	Acquire(ctx context.Context, submissionID uint64) (release func(), ok bool, err error)
}
