package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/yukikurage/org-admin-api/internal/config"
)

// CloudinaryStorage uploads logos to a Cloudinary folder. Each organization
// has one logo object, overwritten on every upload.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(cfg config.CloudinaryConfig) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	cld.Config.URL.Secure = true

	return &CloudinaryStorage{
		cld:    cld,
		folder: cfg.Folder,
	}, nil
}

func (s *CloudinaryStorage) Save(ctx context.Context, logo Logo) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, logo.Content, uploader.UploadParams{
		PublicID:     PublicID(logo.OrganizationID),
		Folder:       s.folder,
		ResourceType: "image",
		Overwrite:    api.Bool(true),
		Invalidate:   api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload logo: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("failed to upload logo: %s", res.Error.Message)
	}

	return res.SecureURL, nil
}
