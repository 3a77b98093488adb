package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

type UploadSignature struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	APIKey    string `json:"api_key"`
	CloudName string `json:"cloud_name"`
	Folder    string `json:"folder"`
}

// MediaStore puts material images on Cloudinary.
type MediaStore struct {
	cld    *cloudinary.Cloudinary
	folder string
	log    *zap.Logger
}

func NewMediaStore(cloudinaryURL, folder string, log *zap.Logger) (*MediaStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &MediaStore{cld: cld, folder: folder, log: log}, nil
}

func (m *MediaStore) Upload(ctx context.Context, file io.Reader, publicID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := m.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   m.folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}

	m.log.Info("Material image uploaded", zap.String("public_id", res.PublicID))
	return res.SecureURL, nil
}

// Signature lets the browser upload straight to Cloudinary into our folder.
func (m *MediaStore) Signature(now time.Time) (*UploadSignature, error) {
	params, err := api.StructToParams(uploader.UploadParams{Folder: m.folder})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare signature params: %w", err)
	}
	ts := now.Unix()
	params.Set("timestamp", strconv.FormatInt(ts, 10))

	signature, err := api.SignParameters(params, m.cld.Config.Cloud.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign upload params: %w", err)
	}

	return &UploadSignature{
		Signature: signature,
		Timestamp: ts,
		APIKey:    m.cld.Config.Cloud.APIKey,
		CloudName: m.cld.Config.Cloud.CloudName,
		Folder:    m.folder,
	}, nil
}
