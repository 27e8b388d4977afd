//go:build integration

package memory

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-prep/internal/db"
)

// These tests require a running PostgreSQL database.
// Set TEST_DATABASE_URL environment variable to run them.

func getTestService(t *testing.T) (*Service, *db.DB) {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, url)
	require.NoError(t, err)
	require.NoError(t, database.InitSchema(ctx))

	return NewService(database), database
}

func TestIntegration_ProcessMemoryUpdate_ReturnsFullRowsAndShortlist(t *testing.T) {
	service, database := getTestService(t)
	defer database.Close()
	ctx := context.Background()

	userID := uuid.New()

	first := service.ProcessMemoryUpdate(ctx, userID, []string{"SQL ", "sql", "Graphs"})
	require.True(t, first.Success)
	assert.Equal(t, 2, first.Updated)

	// Whitespace-variant duplicates collapse to one row incremented once
	require.Len(t, first.UpdatedWeakSkills, 2)
	for _, skill := range first.UpdatedWeakSkills {
		assert.Equal(t, userID, skill.UserID)
		assert.Equal(t, 1, skill.WeaknessCount)
	}

	second := service.ProcessMemoryUpdate(ctx, userID, []string{"sql"})
	require.True(t, second.Success)
	require.Len(t, second.UpdatedWeakSkills, 2)

	// Full row set comes back sorted by recurrence, strongest first
	assert.Equal(t, "sql", second.UpdatedWeakSkills[0].SkillName)
	assert.Equal(t, 2, second.UpdatedWeakSkills[0].WeaknessCount)
	assert.Equal(t, "graphs", second.UpdatedWeakSkills[1].SkillName)
	assert.Equal(t, 1, second.UpdatedWeakSkills[1].WeaknessCount)

	// The shortlist mirrors the row ordering
	assert.Equal(t, []string{"sql", "graphs"}, second.WeakSkills)
}

func TestIntegration_ProcessMemoryUpdate_EmptyBatchReportsCurrentState(t *testing.T) {
	service, database := getTestService(t)
	defer database.Close()
	ctx := context.Background()

	userID := uuid.New()
	service.ProcessMemoryUpdate(ctx, userID, []string{"recursion"})

	result := service.ProcessMemoryUpdate(ctx, userID, nil)
	require.True(t, result.Success)
	assert.Zero(t, result.Updated)
	require.Len(t, result.UpdatedWeakSkills, 1)
	assert.Equal(t, "recursion", result.UpdatedWeakSkills[0].SkillName)
	assert.Equal(t, []string{"recursion"}, result.WeakSkills)
}

func TestIntegration_ProcessMemoryUpdate_ShortlistCapped(t *testing.T) {
	service, database := getTestService(t)
	defer database.Close()
	ctx := context.Background()

	userID := uuid.New()
	topics := []string{"sql", "graphs", "recursion", "hashing", "sorting", "heaps", "tries"}

	result := service.ProcessMemoryUpdate(ctx, userID, topics)
	require.True(t, result.Success)

	// All rows come back; the name shortlist stays capped
	assert.Len(t, result.UpdatedWeakSkills, len(topics))
	assert.Len(t, result.WeakSkills, TopWeakSkillLimit)
}
