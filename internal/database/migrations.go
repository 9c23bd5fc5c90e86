package database

import (
	"sanitrack/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []interface{}{
		&models.User{},
		&models.Toilet{},
		&models.Rating{},
		&models.CleaningTask{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("Failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates additional indexes that GORM doesn't create
// automatically. The partial unique index on cleaning_tasks is the exclusivity
// gate: two concurrent inserts of an active task for the same toilet cannot
// both commit.
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	// The exclusivity index is load-bearing; refuse to start without it.
	exclusivityIndex := "CREATE UNIQUE INDEX IF NOT EXISTS idx_cleaning_tasks_one_active_per_toilet ON cleaning_tasks(toilet_id) WHERE status IN ('assigned', 'in_progress') AND deleted_at IS NULL"
	if err := db.SQL.Exec(exclusivityIndex).Error; err != nil {
		return log.Err("Failed to create active-task exclusivity index", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_ratings_toilet_created ON ratings(toilet_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_cleaning_tasks_cleaner_status ON cleaning_tasks(cleaner_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_cleaning_tasks_completed_at ON cleaning_tasks(completed_at DESC)",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
			// Continue with other indexes even if one fails
		}
	}

	log.Info("Additional database indexes created")
	return nil
}
