package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodLogValidation(t *testing.T) {
	repo := NewMoodLogRepo(nil)

	_, err := repo.Add(context.Background(), MoodLog{Mood: "happy"})
	assert.Error(t, err)

	logs, err := repo.Recent(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestMoodLogModelRoundTrip(t *testing.T) {
	now := time.Now()
	entry := MoodLog{ID: 7, UserID: "u1", Text: "so lonely", Mood: "sad", Confidence: "Very confident", CreatedAt: now}
	assert.Equal(t, entry, moodLogFromModel(moodLogToModel(entry)))
	assert.Equal(t, "mood_logs", moodLogModel{}.TableName())
}

// TestMoodLogRepoPostgres runs against a live database when AURA_TEST_DATABASE_URL is set.
func TestMoodLogRepoPostgres(t *testing.T) {
	dsn := os.Getenv("AURA_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("AURA_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	store, err := NewStore(ctx, dsn)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.AutoMigrate(ctx))

	userID := "test-" + uuid.NewString()
	for _, mood := range []string{"sad", "calm", "happy"} {
		saved, err := store.Moods.Add(ctx, MoodLog{UserID: userID, Text: mood, Mood: mood, Confidence: "Moderately confident"})
		require.NoError(t, err)
		assert.NotZero(t, saved.ID)
	}

	recent, err := store.Moods.Recent(ctx, userID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "calm", recent[0].Mood)
	assert.Equal(t, "happy", recent[1].Mood)
}
