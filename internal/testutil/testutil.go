// Package testutil opens migrated in-memory databases and seeds fixtures for
// repository, controller, and handler tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"reefclean/internal/database"
	"reefclean/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB returns a fresh SQLite database with every model migrated. Foreign
// keys are enforced so cascades behave as they do on Postgres. The pool is
// pinned to one connection, so code inside a transaction must only use tx.
func NewDB(t *testing.T) database.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	return open(t, dsn, 1)
}

// NewFileDB returns a migrated SQLite database backed by a file in a temp
// directory, with a pool of several connections for concurrency tests.
// Writers queue on the busy timeout instead of failing.
func NewFileDB(t *testing.T) database.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "reefclean.sqlite")
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=10000&_journal_mode=WAL", path)
	return open(t, dsn, 8)
}

func open(t *testing.T, dsn string, maxConns int) database.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(dsn), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(maxConns)

	db := database.FromGorm(gormDB, database.Cache{})
	require.NoError(t, db.MigrateModels())
	require.NoError(t, db.CreateIndexes())

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func SeedUser(t *testing.T, db database.DB, role models.Role, name string) *models.User {
	t.Helper()

	email := fmt.Sprintf("%s@reefclean.test", uuid.NewString()[:8])
	user := &models.User{Name: name, Email: &email, Role: role, IsActive: true}
	require.NoError(t, db.SQL.Create(user).Error)
	return user
}

func SeedClient(t *testing.T, db database.DB, name string) *models.Client {
	t.Helper()

	client := &models.Client{Name: name}
	require.NoError(t, db.SQL.Create(client).Error)
	return client
}

func SeedVessel(t *testing.T, db database.DB, clientID uuid.UUID, name string) *models.Vessel {
	t.Helper()

	vessel := &models.Vessel{ClientID: clientID, Name: name, Type: models.VesselTypeYacht}
	require.NoError(t, db.SQL.Create(vessel).Error)
	return vessel
}

// SeedSections creates one section per name, ordered as given.
func SeedSections(t *testing.T, db database.DB, vesselID uuid.UUID, names ...string) []models.VesselSection {
	t.Helper()

	sections := make([]models.VesselSection, 0, len(names))
	for i, name := range names {
		section := models.VesselSection{VesselID: vesselID, Name: name, Order: i + 1}
		require.NoError(t, db.SQL.Create(&section).Error)
		sections = append(sections, section)
	}
	return sections
}

func SeedTemplate(t *testing.T, db database.DB, name string, order int) *models.SectionTemplate {
	t.Helper()

	template := &models.SectionTemplate{Name: name, Order: order}
	require.NoError(t, db.SQL.Create(template).Error)
	return template
}
