package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// MoodLog is one classified user utterance.
type MoodLog struct {
	ID         int
	UserID     string
	Text       string
	Mood       string
	Confidence string
	CreatedAt  time.Time
}

type moodLogModel struct {
	ID         int       `gorm:"primaryKey"`
	UserID     string    `gorm:"index:idx_mood_logs_user_created,priority:1;not null"`
	Text       string    `gorm:"type:text;not null"`
	Mood       string    `gorm:"size:64;not null"`
	Confidence string    `gorm:"size:32;not null"`
	CreatedAt  time.Time `gorm:"index:idx_mood_logs_user_created,priority:2"`
}

func (moodLogModel) TableName() string {
	return "mood_logs"
}

// MoodLogRepo accesses the mood journal.
type MoodLogRepo struct {
	db *gorm.DB
}

// NewMoodLogRepo returns a MoodLogRepo.
func NewMoodLogRepo(db *gorm.DB) *MoodLogRepo {
	return &MoodLogRepo{db: db}
}

// Add inserts entry and returns it with ID and CreatedAt filled in.
func (r *MoodLogRepo) Add(ctx context.Context, entry MoodLog) (MoodLog, error) {
	if entry.UserID == "" {
		return MoodLog{}, errors.New("user id is required")
	}
	record := moodLogToModel(entry)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return MoodLog{}, fmt.Errorf("failed to insert mood log: %w", err)
	}
	return moodLogFromModel(record), nil
}

// Recent returns up to limit entries for userID, oldest first.
func (r *MoodLogRepo) Recent(ctx context.Context, userID string, limit int) ([]MoodLog, error) {
	if limit <= 0 {
		return nil, nil
	}
	var records []moodLogModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query mood logs: %w", err)
	}

	results := make([]MoodLog, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		results = append(results, moodLogFromModel(records[i]))
	}
	return results, nil
}

func moodLogToModel(e MoodLog) moodLogModel {
	return moodLogModel{
		ID:         e.ID,
		UserID:     e.UserID,
		Text:       e.Text,
		Mood:       e.Mood,
		Confidence: e.Confidence,
		CreatedAt:  e.CreatedAt,
	}
}

func moodLogFromModel(m moodLogModel) MoodLog {
	return MoodLog{
		ID:         m.ID,
		UserID:     m.UserID,
		Text:       m.Text,
		Mood:       m.Mood,
		Confidence: m.Confidence,
		CreatedAt:  m.CreatedAt,
	}
}
