package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/org-admin-api/internal/config"
	"github.com/yukikurage/org-admin-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Connect(config.DBConfig{
		Dialect:  config.DialectSQLite,
		Path:     ":memory:",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = Close(db)
	})
	return db
}

func TestDialector(t *testing.T) {
	tests := []struct {
		dialect string
		want    string
	}{
		{config.DialectMySQL, "mysql"},
		{config.DialectPostgres, "postgres"},
		{config.DialectSQLite, "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			d, err := Dialector(config.DBConfig{Dialect: tt.dialect, Path: ":memory:"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name())
		})
	}

	_, err := Dialector(config.DBConfig{Dialect: "oracle"})
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, logLevel("SILENT"))
	assert.Equal(t, logger.Error, logLevel("error"))
	assert.Equal(t, logger.Info, logLevel("info"))
	assert.Equal(t, logger.Warn, logLevel("warn"))
	assert.Equal(t, logger.Warn, logLevel(""))
}

func TestMigrate_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&models.Organization{}))
	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasIndex("users", "idx_users_organization_created"))
	assert.True(t, db.Migrator().HasIndex("organizations", "idx_organizations_status_created"))
	assert.NoError(t, Ping(db))
}

func TestScopes(t *testing.T) {
	db := setupTestDB(t)
	dry := db.Session(&gorm.Session{DryRun: true})

	var orgs []models.Organization
	stmt := dry.Model(&models.Organization{}).
		Scopes(SearchOrganizations(" Acme "), WithStatus("organizations", "Active"), NewestFirst("organizations")).
		Find(&orgs).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "(LOWER(organizations.name) LIKE ? OR LOWER(organizations.slug) LIKE ? OR LOWER(organizations.org_email) LIKE ?)")
	assert.Contains(t, sql, "organizations.status = ?")
	assert.Contains(t, sql, "ORDER BY organizations.created_at DESC,organizations.id DESC")
	assert.Equal(t, []interface{}{"%acme%", "%acme%", "%acme%", "Active"}, stmt.Vars)

	stmt = dry.Model(&models.Organization{}).
		Scopes(SearchOrganizations("  "), WithStatus("organizations", "")).
		Find(&orgs).Statement
	assert.NotContains(t, stmt.SQL.String(), "WHERE")
}
