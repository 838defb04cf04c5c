package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, DialectMySQL, cfg.DB.Dialect)
	assert.Equal(t, "3306", cfg.DB.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxLogoBytes)
	assert.Equal(t, "/uploads", cfg.Upload.URLPrefix)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.Cloudinary.Enabled())
	assert.False(t, cfg.OTel.Enabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_PostgresDefaultsPort(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DIALECT", "Postgres")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DialectPostgres, cfg.DB.Dialect)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "require", cfg.DB.SSLMode)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DIALECT", "sqlite")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("LOGO_MAX_BYTES", "1024")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://admin.example.com ,")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DialectSQLite, cfg.DB.Dialect)
	assert.Equal(t, "/tmp/test.db", cfg.DB.Path)
	assert.Equal(t, int64(1024), cfg.Upload.MaxLogoBytes)
	assert.Equal(t, []string{"http://localhost:5173", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.MetricsEnabled)
	assert.True(t, cfg.Cloudinary.Enabled())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown dialect", "DB_DIALECT", "oracle"},
		{"non-numeric pool size", "DB_MAX_OPEN_CONNS", "ten"},
		{"non-numeric logo limit", "LOGO_MAX_BYTES", "5MB"},
		{"non-boolean metrics flag", "METRICS_ENABLED", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", "test")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			require.Error(t, err)
		})
	}
}
