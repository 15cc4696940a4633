package database

import (
	"errors"
	"time"

	"github.com/daydesk/daydesk/internal/persist"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const migrationBackfillSlotSchemaVersion = "2026-07-20_backfill_slot_schema_version"

type migrationRecord struct {
	Name             string `gorm:"column:name;primaryKey;size:190;not null"`
	AppliedAtSeconds int64  `gorm:"column:applied_at_s;not null"`
}

func (migrationRecord) TableName() string {
	return "db_migrations"
}

type migrationDefinition struct {
	name  string
	apply func(*gorm.DB) error
}

func applyMigrations(db *gorm.DB, logger *zap.Logger) error {
	migrations := []migrationDefinition{
		{name: migrationBackfillSlotSchemaVersion, apply: backfillSlotSchemaVersion},
	}

	for _, migration := range migrations {
		var record migrationRecord
		err := db.Where("name = ?", migration.name).Take(&record).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := migration.apply(db); err != nil {
			return err
		}
		appliedAt := time.Now().UTC().Unix()
		if err := db.Create(&migrationRecord{Name: migration.name, AppliedAtSeconds: appliedAt}).Error; err != nil {
			return err
		}
		if logger != nil {
			logger.Info("database migration applied", zap.String("migration", migration.name))
		}
	}
	return nil
}

// backfillSlotSchemaVersion stamps slots written before the schema_version
// column existed so Load can route them through payload migrations.
func backfillSlotSchemaVersion(db *gorm.DB) error {
	return db.Model(&persist.SlotRecord{}).
		Where("schema_version = 0").
		Update("schema_version", 1).Error
}
