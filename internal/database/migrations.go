package database

import (
	"reefclean/internal/models"
)

// MigrateModels runs GORM AutoMigrate in dependency order.
func (db *DB) MigrateModels() error {
	log := db.log.Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []any{
		&models.User{},
		&models.Client{},
		&models.Vessel{},
		&models.VesselSection{},
		&models.SectionTemplate{},
		&models.CleaningJob{},
		&models.SectionProgress{},
		&models.Media{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates the composite indexes used by keyset pagination.
func (db *DB) CreateIndexes() error {
	log := db.log.Function("CreateIndexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_cleaning_jobs_created_at_id ON cleaning_jobs(created_at DESC, id DESC)",
		"CREATE INDEX IF NOT EXISTS idx_clients_name_id ON clients(name, id)",
		"CREATE INDEX IF NOT EXISTS idx_vessels_name_id ON vessels(name, id)",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
		}
	}

	return nil
}
