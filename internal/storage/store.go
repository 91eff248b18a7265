// Package storage persists the mood journal in PostgreSQL through gorm.
package storage

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Store holds the DB handle and repositories.
type Store struct {
	db    *gorm.DB
	Moods *MoodLogRepo
}

// NewStore opens and pings the database.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{
		db:    db,
		Moods: NewMoodLogRepo(db),
	}, nil
}

// DB exposes the gorm handle, e.g. for the adk session service.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// AutoMigrate creates or updates the journal tables.
func (s *Store) AutoMigrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&moodLogModel{}); err != nil {
		return fmt.Errorf("failed to migrate mood journal: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	if s.db == nil {
		return
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
