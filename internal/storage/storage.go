// Package storage persists organization logos and returns the URL they are
// served from.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// LogoStorage stores a logo and returns its public URL.
type LogoStorage interface {
	Save(ctx context.Context, logo Logo) (string, error)
}

// Logo is an uploaded logo file.
type Logo struct {
	OrganizationID uint64
	Filename       string
	Size           int64
	Content        io.Reader
}

var allowedLogoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// AllowedLogoFormats lists the accepted formats for error messages.
const AllowedLogoFormats = "jpg, jpeg, png, gif"

// LogoExtension returns the lower-cased extension of filename and whether it
// is an accepted logo format.
func LogoExtension(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext, allowedLogoExtensions[ext]
}

// PublicID is the stable object name for an organization's logo.
func PublicID(organizationID uint64) string {
	return fmt.Sprintf("logo-org-%d", organizationID)
}
