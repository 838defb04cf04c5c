package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/yukikurage/org-admin-api/internal/utils"
)

// LocalStorage writes logos to a directory that is served statically under
// urlPrefix.
type LocalStorage struct {
	dir       string
	urlPrefix string
	ids       *utils.IDGenerator
}

func NewLocalStorage(dir, urlPrefix string, ids *utils.IDGenerator) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{
		dir:       dir,
		urlPrefix: urlPrefix,
		ids:       ids,
	}, nil
}

// Save writes the logo under a unique file name so a replaced logo is never
// served from a stale cache entry.
func (s *LocalStorage) Save(ctx context.Context, logo Logo) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext, _ := LogoExtension(logo.Filename)
	name := fmt.Sprintf("%s-%d%s", PublicID(logo.OrganizationID), s.ids.Next(), ext)
	dst := filepath.Join(s.dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create logo file: %w", err)
	}

	if _, err := io.Copy(f, logo.Content); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to write logo file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write logo file: %w", err)
	}

	return path.Join(s.urlPrefix, name), nil
}
