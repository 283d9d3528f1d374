package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/arens/quizdeck/internal/errors"
	"github.com/arens/quizdeck/internal/models"
	"github.com/arens/quizdeck/internal/repository"
	"github.com/arens/quizdeck/internal/repository/sqlite"
	"github.com/arens/quizdeck/internal/services"
	"github.com/arens/quizdeck/internal/testutil"
)

func newScoreService(t *testing.T) (services.ScoreService, repository.UserRepository) {
	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, db) })
	return services.NewScoreService(sqlite.NewScoreRepository(db), 10), sqlite.NewUserRepository(db)
}

func TestSubmit_HappyPath(t *testing.T) {
	svc, users := newScoreService(t)
	ctx := context.Background()

	uid, err := users.Insert(ctx, "ada", "hash")
	require.NoError(t, err)

	saved, err := svc.Submit(ctx, uid, models.Score{
		SubcategoryID:  "gk-geography",
		Score:          8,
		TotalQuestions: 10,
	})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, uid, saved.UserID)
	// Category comes from the catalog, not from the request
	assert.Equal(t, "gk", saved.CategoryID)
	assert.Equal(t, "mixed", saved.Difficulty)
}

func TestSubmit_Validation(t *testing.T) {
	svc, users := newScoreService(t)
	ctx := context.Background()

	uid, err := users.Insert(ctx, "ada", "hash")
	require.NoError(t, err)

	tests := []struct {
		name  string
		score models.Score
	}{
		{"missing subcategory", models.Score{Score: 5, TotalQuestions: 10}},
		{"zero total", models.Score{SubcategoryID: "gk-geography", Score: 0, TotalQuestions: 0}},
		{"negative score", models.Score{SubcategoryID: "gk-geography", Score: -1, TotalQuestions: 10}},
		{"score above total", models.Score{SubcategoryID: "gk-geography", Score: 11, TotalQuestions: 10}},
		{"bad difficulty", models.Score{SubcategoryID: "gk-geography", Score: 5, TotalQuestions: 10, Difficulty: "brutal"}},
		{"unknown subcategory without category", models.Score{SubcategoryID: "custom-99", Score: 5, TotalQuestions: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, uid, tt.score)
			assert.Equal(t, apperrors.ErrCodeValidation, appErr(t, err).Code)
		})
	}
}

func TestSubmit_CustomQuizKeepsClientCategory(t *testing.T) {
	svc, users := newScoreService(t)
	ctx := context.Background()

	uid, err := users.Insert(ctx, "ada", "hash")
	require.NoError(t, err)

	saved, err := svc.Submit(ctx, uid, models.Score{
		CategoryID:     "custom",
		SubcategoryID:  "custom-7",
		Score:          3,
		TotalQuestions: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "custom", saved.CategoryID)
}

func TestLeaderboard_DefaultLimitAndEmpty(t *testing.T) {
	svc, users := newScoreService(t)
	ctx := context.Background()

	entries, err := svc.Leaderboard(ctx, models.ScoreFilter{})
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)

	uid, err := users.Insert(ctx, "ada", "hash")
	require.NoError(t, err)
	for i := 0; i <= 11; i++ {
		_, err := svc.Submit(ctx, uid, models.Score{
			SubcategoryID:  "gk-geography",
			Score:          i % 10,
			TotalQuestions: 10,
		})
		require.NoError(t, err)
	}

	entries, err = svc.Leaderboard(ctx, models.ScoreFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 10)
}

func TestMyScores(t *testing.T) {
	svc, users := newScoreService(t)
	ctx := context.Background()

	uid, err := users.Insert(ctx, "ada", "hash")
	require.NoError(t, err)

	scores, err := svc.MyScores(ctx, uid)
	require.NoError(t, err)
	assert.NotNil(t, scores)
	assert.Empty(t, scores)

	_, err = svc.Submit(ctx, uid, models.Score{SubcategoryID: "gk-history", Score: 4, TotalQuestions: 10})
	require.NoError(t, err)

	scores, err = svc.MyScores(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, scores, 1)
}
