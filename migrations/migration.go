package migrations

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Migration is a row of the bookkeeping table.
type Migration struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"unique;not null"`
	Batch     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type MigrationFunc func(*gorm.DB) error

type MigrationDefinition struct {
	Name string
	Up   MigrationFunc
	Down MigrationFunc
}

// Migrator applies definitions in registration order. Every Migrate call
// that applies something records it under a new batch, and Rollback undoes
// whole batches, newest first.
type Migrator struct {
	db         *gorm.DB
	migrations []MigrationDefinition
}

func NewMigrator(db *gorm.DB) (*Migrator, error) {
	if err := db.AutoMigrate(&Migration{}); err != nil {
		return nil, fmt.Errorf("creating migrations table: %w", err)
	}
	return &Migrator{db: db}, nil
}

func (m *Migrator) AddMigration(migrations ...MigrationDefinition) {
	m.migrations = append(m.migrations, migrations...)
}

// All returns every definition of the API in dependency order.
func All() []MigrationDefinition {
	return append(GetAuthMigrations(), GetCoreMigrations()...)
}

func (m *Migrator) Migrate() error {
	batch, err := m.latestBatch()
	if err != nil {
		return err
	}
	batch++

	applied := 0
	for _, migration := range m.migrations {
		done, err := m.hasRun(migration.Name)
		if err != nil {
			return err
		}
		if done {
			continue
		}

		log.Info().Str("migration", migration.Name).Msg("migrating")
		err = m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return fmt.Errorf("migration %s failed: %w", migration.Name, err)
			}
			if err := tx.Create(&Migration{Name: migration.Name, Batch: batch}).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		applied++
	}

	log.Info().Int("applied", applied).Int("batch", batch).Msg("migrations complete")
	return nil
}

func (m *Migrator) Rollback(steps int) error {
	if steps <= 0 {
		steps = 1
	}
	batch, err := m.latestBatch()
	if err != nil {
		return err
	}

	for i := 0; i < steps && batch > 0; i++ {
		var records []Migration
		if err := m.db.Where("batch = ?", batch).Order("id DESC").Find(&records).Error; err != nil {
			return err
		}

		for _, record := range records {
			migration := m.findMigration(record.Name)
			if migration == nil {
				return fmt.Errorf("migration definition not found: %s", record.Name)
			}
			if migration.Down == nil {
				return fmt.Errorf("rollback not defined for migration: %s", record.Name)
			}

			log.Info().Str("migration", record.Name).Msg("rolling back")
			err := m.db.Transaction(func(tx *gorm.DB) error {
				if err := migration.Down(tx); err != nil {
					return fmt.Errorf("rollback failed for %s: %w", record.Name, err)
				}
				return tx.Delete(&record).Error
			})
			if err != nil {
				return err
			}
		}
		batch--
	}
	return nil
}

// Status lists the applied migrations in order.
func (m *Migrator) Status() ([]Migration, error) {
	var records []Migration
	err := m.db.Order("id").Find(&records).Error
	return records, err
}

func (m *Migrator) hasRun(name string) (bool, error) {
	var count int64
	err := m.db.Model(&Migration{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (m *Migrator) latestBatch() (int, error) {
	var batch int
	err := m.db.Model(&Migration{}).Select("COALESCE(MAX(batch), 0)").Scan(&batch).Error
	return batch, err
}

func (m *Migrator) findMigration(name string) *MigrationDefinition {
	for i := range m.migrations {
		if m.migrations[i].Name == name {
			return &m.migrations[i]
		}
	}
	return nil
}
