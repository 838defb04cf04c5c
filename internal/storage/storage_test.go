package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/org-admin-api/internal/config"
	"github.com/yukikurage/org-admin-api/internal/utils"
)

func TestLogoExtension(t *testing.T) {
	tests := []struct {
		filename string
		wantExt  string
		wantOK   bool
	}{
		{"logo.png", ".png", true},
		{"LOGO.JPG", ".jpg", true},
		{"logo.jpeg", ".jpeg", true},
		{"anim.gif", ".gif", true},
		{"vector.svg", ".svg", false},
		{"noext", "", false},
		{"archive.png.zip", ".zip", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			ext, ok := LogoExtension(tt.filename)
			assert.Equal(t, tt.wantExt, ext)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestPublicID(t *testing.T) {
	assert.Equal(t, "logo-org-42", PublicID(42))
}

func newTestLocalStorage(t *testing.T) (*LocalStorage, string) {
	t.Helper()

	ids, err := utils.NewIDGenerator(1)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStorage(dir, "/uploads", ids)
	require.NoError(t, err)
	return s, dir
}

func TestLocalStorage_Save(t *testing.T) {
	s, dir := newTestLocalStorage(t)
	ctx := context.Background()

	first, err := s.Save(ctx, Logo{OrganizationID: 7, Filename: "Logo.PNG", Content: bytes.NewReader([]byte("one"))})
	require.NoError(t, err)
	second, err := s.Save(ctx, Logo{OrganizationID: 7, Filename: "logo.png", Content: bytes.NewReader([]byte("two"))})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	for url, want := range map[string]string{first: "one", second: "two"} {
		assert.True(t, strings.HasPrefix(url, "/uploads/logo-org-7-"), url)
		assert.True(t, strings.HasSuffix(url, ".png"), url)

		content, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
		require.NoError(t, err)
		assert.Equal(t, want, string(content))
	}
}

func TestLocalStorage_SaveCanceled(t *testing.T) {
	s, dir := newTestLocalStorage(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Save(ctx, Logo{OrganizationID: 1, Filename: "logo.gif", Content: bytes.NewReader([]byte("x"))})
	require.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewCloudinaryStorage(t *testing.T) {
	s, err := NewCloudinaryStorage(config.CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
		Folder:    "org-logos",
	})
	require.NoError(t, err)
	assert.Equal(t, "org-logos", s.folder)
	assert.Equal(t, "demo", s.cld.Config.Cloud.CloudName)
}
