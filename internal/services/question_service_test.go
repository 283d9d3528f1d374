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

func newQuestionService(t *testing.T) (services.QuestionService, repository.UserRepository) {
	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, db) })
	return services.NewQuestionService(sqlite.NewQuestionRepository(db)), sqlite.NewUserRepository(db)
}

func validBankQuestion() models.Question {
	return models.Question{
		CategoryID:    "gk",
		SubcategoryID: "gk-history",
		Text:          "Who wrote the first compiler?",
		Options:       []string{"Grace Hopper", "Ada Lovelace", "Alan Turing", "John Backus"},
		AnswerIndex:   0,
		Difficulty:    "easy",
	}
}

func TestBankQuestionCreate_Validation(t *testing.T) {
	svc, users := newQuestionService(t)
	ctx := context.Background()

	uid, err := users.Insert(ctx, "ada", "hash")
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(*models.Question)
	}{
		{"missing category", func(q *models.Question) { q.CategoryID = "" }},
		{"blank text", func(q *models.Question) { q.Text = "   " }},
		{"too few options", func(q *models.Question) { q.Options = q.Options[:3] }},
		{"blank option", func(q *models.Question) { q.Options[2] = " " }},
		{"answer index out of range", func(q *models.Question) { q.AnswerIndex = 4 }},
		{"negative answer index", func(q *models.Question) { q.AnswerIndex = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := validBankQuestion()
			tc.mutate(&q)
			_, err := svc.Create(ctx, uid, q)
			assert.Equal(t, apperrors.ErrCodeValidation, appErr(t, err).Code)
		})
	}

	created, err := svc.Create(ctx, uid, validBankQuestion())
	require.NoError(t, err)
	assert.Equal(t, uid, created.CreatedBy)
	assert.NotZero(t, created.ID)
}

func TestBankQuestionListing(t *testing.T) {
	svc, users := newQuestionService(t)
	ctx := context.Background()

	ada, err := users.Insert(ctx, "ada", "hash")
	require.NoError(t, err)
	grace, err := users.Insert(ctx, "grace", "hash")
	require.NoError(t, err)

	q := validBankQuestion()
	_, err = svc.Create(ctx, ada, q)
	require.NoError(t, err)
	q.SubcategoryID = "gk-geography"
	_, err = svc.Create(ctx, grace, q)
	require.NoError(t, err)

	all, err := svc.List(ctx, models.QuestionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.List(ctx, models.QuestionFilter{SubcategoryID: "gk-geography"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, grace, filtered[0].CreatedBy)

	mine, err := svc.ListMine(ctx, ada, models.QuestionFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, ada, mine[0].CreatedBy)

	empty, err := svc.List(ctx, models.QuestionFilter{CategoryID: "sports"})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestBankQuestionUpdate_AuthorOnly(t *testing.T) {
	svc, users := newQuestionService(t)
	ctx := context.Background()

	ada, err := users.Insert(ctx, "ada", "hash")
	require.NoError(t, err)
	grace, err := users.Insert(ctx, "grace", "hash")
	require.NoError(t, err)

	created, err := svc.Create(ctx, ada, validBankQuestion())
	require.NoError(t, err)

	edit := validBankQuestion()
	edit.Text = "Edited?"

	_, err = svc.Update(ctx, created.ID, grace, edit)
	assert.Equal(t, apperrors.ErrCodeForbidden, appErr(t, err).Code)

	updated, err := svc.Update(ctx, created.ID, ada, edit)
	require.NoError(t, err)
	assert.Equal(t, "Edited?", updated.Text)
	// Category is fixed at creation
	assert.Equal(t, "gk", updated.CategoryID)

	_, err = svc.Update(ctx, 999, ada, edit)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr(t, err).Code)
}

func TestBankQuestionDelete_AuthorOnly(t *testing.T) {
	svc, users := newQuestionService(t)
	ctx := context.Background()

	ada, err := users.Insert(ctx, "ada", "hash")
	require.NoError(t, err)
	grace, err := users.Insert(ctx, "grace", "hash")
	require.NoError(t, err)

	created, err := svc.Create(ctx, ada, validBankQuestion())
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ID, grace)
	assert.Equal(t, apperrors.ErrCodeForbidden, appErr(t, err).Code)

	require.NoError(t, svc.Delete(ctx, created.ID, ada))

	err = svc.Delete(ctx, created.ID, ada)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr(t, err).Code)
}
