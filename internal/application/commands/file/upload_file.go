package file

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/storage"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
	"github.com/Negosyo-Digital/platform-backend/pkg/env"
	"github.com/google/uuid"
)

type UploadFile struct {
	uowFactory *dbs.UOWFactory
	storage    *storage.Storage
	cfg        UploadConfig
}

func NewUploadFile(factory *dbs.UOWFactory, storage *storage.Storage, cfg UploadConfig) *UploadFile {
	return &UploadFile{uowFactory: factory, storage: storage, cfg: cfg}
}

type UploadConfig struct {
	path string
}

func NewUploadConfig() UploadConfig {
	return UploadConfig{
		path: env.GetEnv("UPLOAD_PREFIX", "photos/"),
	}
}

func (c *UploadFile) Execute(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.FileUploadedResponse, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("err opening file, %v", err)
	}
	defer f.Close()

	fileID := uuid.New()
	contentType := fileHeader.Header.Get("Content-Type")
	fileURL, err := c.storage.UploadFile(ctx, fmt.Sprintf("%s%s", c.cfg.path, fileID.String()), &contentType, f)
	if err != nil {
		return nil, fmt.Errorf("err uploading to s3, %v", err)
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	_, err = tx.Exec(ctx, "INSERT INTO negosyo.files(id, url, created_at) VALUES($1,$2,$3)",
		fileID, fileURL, time.Now())
	if err != nil {
		return nil, fmt.Errorf("err inserting file to db %v", err)
	}

	return &dto.FileUploadedResponse{
		FileID:  fileID.String(),
		FileURL: fileURL,
	}, nil
}
