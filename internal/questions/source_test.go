package questions_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arens/quizdeck/internal/opentdb"
	"github.com/arens/quizdeck/internal/questions"
	"github.com/arens/quizdeck/internal/quiz"
)

type stubClient struct {
	results []opentdb.Result
	err     error

	gotCategory   int
	gotAmount     int
	gotDifficulty string
}

func (s *stubClient) FetchQuestions(_ context.Context, categoryID, amount int, difficulty string) ([]opentdb.Result, error) {
	s.gotCategory = categoryID
	s.gotAmount = amount
	s.gotDifficulty = difficulty
	return s.results, s.err
}

func TestLoad_LocalCollection(t *testing.T) {
	src := questions.NewSource(nil, nil)

	pool, err := src.Load(context.Background(), "gk-geography", 10, quiz.DifficultyMixed)
	require.NoError(t, err)
	require.NotEmpty(t, pool)

	for _, q := range pool {
		assert.NoError(t, q.Validate())
		assert.NotEmpty(t, q.Difficulty)
	}
}

func TestLoad_AllLocalCollectionsParse(t *testing.T) {
	src := questions.NewSource(nil, nil)

	for _, g := range questions.Groups {
		for _, sub := range g.Subcategories {
			if _, ok := sub.Provenance.(questions.Local); !ok {
				continue
			}
			pool, err := src.Load(context.Background(), sub.ID, 10, quiz.DifficultyMixed)
			require.NoError(t, err, "subcategory %s", sub.ID)
			assert.NotEmpty(t, pool, "subcategory %s", sub.ID)
		}
	}
}

func TestLoad_RemoteForwardsParameters(t *testing.T) {
	client := &stubClient{results: []opentdb.Result{
		{
			Question:         "What is 2+2?",
			CorrectAnswer:    "4",
			IncorrectAnswers: []string{"3", "5", "22"},
			Difficulty:       "easy",
		},
	}}
	src := questions.NewSource(client, rand.New(rand.NewSource(1)))

	pool, err := src.Load(context.Background(), "science-mixed-api", 5, "easy")
	require.NoError(t, err)
	require.Len(t, pool, 1)

	assert.Equal(t, 17, client.gotCategory)
	assert.Equal(t, 5, client.gotAmount)
	assert.Equal(t, "easy", client.gotDifficulty)
}

func TestLoad_RemoteDefaultsAmount(t *testing.T) {
	client := &stubClient{results: []opentdb.Result{
		{
			Question:         "Capital of France?",
			CorrectAnswer:    "Paris",
			IncorrectAnswers: []string{"Lyon", "Nice", "Lille"},
		},
	}}
	src := questions.NewSource(client, nil)

	_, err := src.Load(context.Background(), "gk-mixed-api", 0, quiz.DifficultyMixed)
	require.NoError(t, err)
	assert.Equal(t, quiz.DefaultQuizLength, client.gotAmount)
}

func TestLoad_RemoteEmptyPoolIsErrNoQuestions(t *testing.T) {
	client := &stubClient{results: nil}
	src := questions.NewSource(client, nil)

	_, err := src.Load(context.Background(), "sports-mixed-api", 10, "hard")
	assert.ErrorIs(t, err, quiz.ErrNoQuestions)
}

func TestLoad_RemoteErrorPropagates(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}
	src := questions.NewSource(client, nil)

	_, err := src.Load(context.Background(), "gk-mixed-api", 10, quiz.DifficultyMixed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestLoad_SkipsMalformedRecords(t *testing.T) {
	client := &stubClient{results: []opentdb.Result{
		{
			Question:         "Valid?",
			CorrectAnswer:    "Yes",
			IncorrectAnswers: []string{"No", "Maybe", "Never"},
		},
		{
			// Too many options after merging the correct answer.
			Question:         "Broken?",
			CorrectAnswer:    "A",
			IncorrectAnswers: []string{"B", "C", "D", "E"},
		},
	}}
	src := questions.NewSource(client, nil)

	pool, err := src.Load(context.Background(), "gk-mixed-api", 10, quiz.DifficultyMixed)
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, "Valid?", pool[0].Text)
}

func TestLoad_UnknownSubcategory(t *testing.T) {
	src := questions.NewSource(nil, nil)

	_, err := src.Load(context.Background(), "nope", 10, quiz.DifficultyMixed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown subcategory")
}

func TestNormalize_DecodesEntitiesAndRecomputesIndex(t *testing.T) {
	r := opentdb.Result{
		Question:         "Who wrote &quot;Hamlet&quot;?",
		CorrectAnswer:    "Shakespeare &amp; Co",
		IncorrectAnswers: []string{"Marlowe", "Jonson", "Bacon &amp; Son"},
		Difficulty:       "medium",
	}

	q, err := questions.Normalize(r, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	assert.Equal(t, `Who wrote "Hamlet"?`, q.Text)
	assert.Len(t, q.Options, 4)
	assert.Contains(t, q.Options, "Bacon & Son")
	require.GreaterOrEqual(t, q.AnswerIndex, 0)
	assert.Equal(t, "Shakespeare & Co", q.Options[q.AnswerIndex])
	assert.Equal(t, "medium", q.Difficulty)
}

func TestNormalize_TrueFalseRecord(t *testing.T) {
	r := opentdb.Result{
		Question:         "The sky is blue.",
		CorrectAnswer:    "True",
		IncorrectAnswers: []string{"False"},
	}

	q, err := questions.Normalize(r, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Len(t, q.Options, 2)
	assert.Equal(t, "True", q.Options[q.AnswerIndex])
	assert.Equal(t, quiz.DifficultyMixed, q.Difficulty)
}

func TestNormalize_AnswerAlwaysTracked(t *testing.T) {
	r := opentdb.Result{
		Question:         "Pick one.",
		CorrectAnswer:    "Right",
		IncorrectAnswers: []string{"Wrong 1", "Wrong 2", "Wrong 3"},
	}

	for seed := int64(0); seed < 20; seed++ {
		q, err := questions.Normalize(r, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		assert.Equal(t, "Right", q.Options[q.AnswerIndex], "seed %d", seed)
	}
}
