package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/dompet-dev/dompet/internal/model"
)

// snapshotRow is one identity's document in the snapshots table.
type snapshotRow struct {
	Key       string `gorm:"column:key;primaryKey"`
	Data      string `gorm:"column:data;type:jsonb;not null"`
	UpdatedAt time.Time
}

func (snapshotRow) TableName() string { return "snapshots" }

// PostgresStore keeps snapshots in a PostgreSQL jsonb column.
type PostgresStore struct {
	db *gorm.DB
}

// OpenPostgres connects to dsn. With migrate set, the snapshots table is
// created or updated.
func OpenPostgres(dsn string, migrate bool) (*PostgresStore, error) {
	gormLogger := logger.New(
		log.New(os.Stderr, "[GORM] ", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	s := NewPostgresStore(db)
	if migrate {
		if err := s.Migrate(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewPostgresStore wraps an open gorm connection.
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the snapshots table if needed.
func (s *PostgresStore) Migrate() error {
	if err := s.db.AutoMigrate(&snapshotRow{}); err != nil {
		return fmt.Errorf("migrating snapshots table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, key string) (model.Snapshot, error) {
	return orEmpty(s.load(ctx, key))
}

func (s *PostgresStore) load(ctx context.Context, key string) (model.Snapshot, error) {
	var row snapshotRow
	err := s.db.WithContext(ctx).Where(&snapshotRow{Key: key}).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("loading snapshot %q: %w", key, err)
	}
	return Decode([]byte(row.Data))
}

// Save upserts the document for key.
func (s *PostgresStore) Save(ctx context.Context, key string, snap model.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	row := snapshotRow{Key: key, Data: string(data), UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("saving snapshot %q: %w", key, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
