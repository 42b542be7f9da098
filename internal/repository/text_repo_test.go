package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/models"
)

func TestTextRepositoryDuplicateDetection(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTextRepository(db)
	ctx := context.Background()

	owner := uint(7)
	text := models.Text{Filename: "essay.txt", Content: "the same essay", OwnerID: &owner}
	require.NoError(t, repo.Create(ctx, &text))

	exists, err := repo.ExistsByContentAndOwner(ctx, "the same essay", owner)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsByContentAndOwner(ctx, "the same essay", 99)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestTextRepositoryOwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTextRepository(db)
	ctx := context.Background()

	owner := uint(7)
	text := models.Text{Filename: "essay.txt", Content: "content", OwnerID: &owner}
	require.NoError(t, repo.Create(ctx, &text))

	found, err := repo.GetByIDAndOwner(ctx, text.ID, owner)
	require.NoError(t, err)
	require.Equal(t, "essay.txt", found.Filename)

	_, err = repo.GetByIDAndOwner(ctx, text.ID, 99)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTextRepositoryPreloadsAnalysis(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTextRepository(db)
	ctx := context.Background()

	owner := uint(7)
	text := models.Text{
		Filename: "essay.txt",
		Content:  "content",
		OwnerID:  &owner,
		Summary:  "summary",
		Fallacies: []models.Fallacy{
			{Type: "straw man", Description: "misrepresents the claim"},
		},
		Questions: []models.Question{
			{Level: models.QuestionLevelLiteral, Question: "what happened?"},
		},
	}
	require.NoError(t, repo.Create(ctx, &text))

	found, err := repo.GetByID(ctx, text.ID)
	require.NoError(t, err)
	require.Len(t, found.Fallacies, 1)
	require.Len(t, found.Questions, 1)
}
