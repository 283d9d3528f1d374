package quiz_test

import (
	"testing"

	"github.com/arens/quizdeck/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeQuestions() []quiz.Question {
	return []quiz.Question{
		{Text: "Capital of France?", Options: []string{"Paris", "Lyon", "Nice", "Lille"}, AnswerIndex: 0, Difficulty: "easy"},
		{Text: "2 + 2?", Options: []string{"3", "4", "5", "6"}, AnswerIndex: 1, Difficulty: "easy"},
		{Text: "Largest planet?", Options: []string{"Mars", "Venus", "Jupiter", "Saturn"}, AnswerIndex: 2, Difficulty: "medium"},
	}
}

func fourQuestions() []quiz.Question {
	qs := threeQuestions()
	return append(qs, quiz.Question{
		Text: "H2O is?", Options: []string{"Water", "Salt"}, AnswerIndex: 0, Difficulty: "easy",
	})
}

func startedSession(t *testing.T, questions []quiz.Question, mode quiz.Mode) *quiz.Session {
	t.Helper()
	s, err := quiz.NewSession(questions, mode, "", "", 0)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	return s
}

func TestNewSession_Postconditions(t *testing.T) {
	s := startedSession(t, threeQuestions(), quiz.ModeSolo)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 0, s.Position())
	assert.False(t, s.Ended())
	for i := 0; i < s.Len(); i++ {
		_, set := s.Answer(i)
		assert.False(t, set, "slot %d should start unset", i)
	}
}

func TestNewSession_RequiresQuestions(t *testing.T) {
	_, err := quiz.NewSession(nil, quiz.ModeSolo, "", "", 0)
	assert.ErrorIs(t, err, quiz.ErrNoQuestions)
}

func TestNewSession_RejectsMalformedQuestion(t *testing.T) {
	bad := []quiz.Question{
		{Text: "only one option", Options: []string{"a"}, AnswerIndex: 0},
	}
	_, err := quiz.NewSession(bad, quiz.ModeSolo, "", "", 0)
	assert.Error(t, err)
}

func TestStart_WhileInProgressIsInvalidState(t *testing.T) {
	s := startedSession(t, threeQuestions(), quiz.ModeSolo)
	assert.ErrorIs(t, s.Start(), quiz.ErrInvalidState)
}

func TestSubmitAnswer_FirstAnswerWins(t *testing.T) {
	s := startedSession(t, threeQuestions(), quiz.ModeSolo)

	require.NoError(t, s.SubmitAnswer(0))
	// Second submit on the same slot is a silent no-op, not an error.
	require.NoError(t, s.SubmitAnswer(3))

	got, set := s.Answer(0)
	require.True(t, set)
	assert.Equal(t, 0, got, "slot keeps the first submitted value")
}

func TestSubmitAnswer_OutOfRange(t *testing.T) {
	s := startedSession(t, threeQuestions(), quiz.ModeSolo)

	assert.ErrorIs(t, s.SubmitAnswer(4), quiz.ErrOptionOutOfRange)
	assert.ErrorIs(t, s.SubmitAnswer(-1), quiz.ErrOptionOutOfRange)

	_, set := s.Answer(0)
	assert.False(t, set, "rejected submissions must not record an answer")
}

func TestSubmitAnswer_AfterEndIsInvalidState(t *testing.T) {
	s := startedSession(t, threeQuestions(), quiz.ModeSolo)
	s.End(quiz.EndManual)
	assert.ErrorIs(t, s.SubmitAnswer(0), quiz.ErrInvalidState)
}

func TestAdvanceRetreat_StayInBounds(t *testing.T) {
	s := startedSession(t, threeQuestions(), quiz.ModeSolo)

	s.Retreat()
	assert.Equal(t, 0, s.Position(), "retreat at first question is a no-op")

	s.Advance()
	s.Advance()
	assert.Equal(t, 2, s.Position())

	s.Advance()
	assert.Equal(t, 2, s.Position(), "advance at last question is a no-op")

	s.Retreat()
	assert.Equal(t, 1, s.Position())
}

func TestScores_PureRecomputation(t *testing.T) {
	s := startedSession(t, threeQuestions(), quiz.ModeSolo)
	require.NoError(t, s.SubmitAnswer(0)) // correct

	first := s.Scores()
	second := s.Scores()
	assert.Equal(t, first, second, "repeated tally reads must agree")

	s.Advance()
	s.Retreat()
	assert.Equal(t, first, s.Scores(), "navigation must not change the tally")
}

func TestEnd_Idempotent(t *testing.T) {
	s := startedSession(t, threeQuestions(), quiz.ModeSolo)
	require.NoError(t, s.SubmitAnswer(0))

	assert.True(t, s.End(quiz.EndManual), "first End performs the transition")
	frozen := s.Scores()

	assert.False(t, s.End(quiz.EndTimeout), "second End is a no-op")
	assert.False(t, s.End(quiz.EndManual))
	assert.Equal(t, frozen, s.Scores(), "frozen final score never changes")
	assert.Equal(t, quiz.EndManual, s.Reason())
}

func TestTwoPlayer_TurnAttributionByParity(t *testing.T) {
	s := startedSession(t, fourQuestions(), quiz.ModeTwoPlayer)

	assert.Equal(t, 1, s.PlayerForIndex(0))
	assert.Equal(t, 2, s.PlayerForIndex(1))
	assert.Equal(t, 1, s.PlayerForIndex(2))
	assert.Equal(t, 2, s.PlayerForIndex(3))
}

func TestScenario_SoloThreeQuestions(t *testing.T) {
	// correct / correct / incorrect
	s := startedSession(t, threeQuestions(), quiz.ModeSolo)
	require.NoError(t, s.SubmitAnswer(0))
	s.Advance()
	require.NoError(t, s.SubmitAnswer(1))
	s.Advance()
	require.NoError(t, s.SubmitAnswer(0))

	s.End(quiz.EndManual)

	assert.Equal(t, quiz.Tally{1: 2, 2: 0}, s.Scores())
	assert.Equal(t, "You scored 2 out of 3.", s.Summary())
}

func TestScenario_TwoPlayerFourQuestions(t *testing.T) {
	// correct / incorrect / correct / correct
	s, err := quiz.NewSession(fourQuestions(), quiz.ModeTwoPlayer, "Ada", "Grace", 0)
	require.NoError(t, err)
	require.NoError(t, s.Start())

	require.NoError(t, s.SubmitAnswer(0)) // Q0 player 1, correct
	s.Advance()
	require.NoError(t, s.SubmitAnswer(0)) // Q1 player 2, incorrect
	s.Advance()
	require.NoError(t, s.SubmitAnswer(2)) // Q2 player 1, correct
	s.Advance()
	require.NoError(t, s.SubmitAnswer(0)) // Q3 player 2, correct

	assert.True(t, s.AllAnswered())
	s.End(quiz.EndManual)

	assert.Equal(t, quiz.Tally{1: 2, 2: 1}, s.Scores())
	assert.Equal(t, "Ada wins! (2 – 1).", s.Summary())
}

func TestScenario_TwoPlayerDraw(t *testing.T) {
	s := startedSession(t, fourQuestions(), quiz.ModeTwoPlayer)

	require.NoError(t, s.SubmitAnswer(0)) // P1 correct
	s.Advance()
	require.NoError(t, s.SubmitAnswer(1)) // P2 correct
	s.Advance()
	require.NoError(t, s.SubmitAnswer(0)) // P1 incorrect
	s.Advance()
	require.NoError(t, s.SubmitAnswer(1)) // P2 incorrect

	s.End(quiz.EndManual)
	assert.Equal(t, quiz.Tally{1: 1, 2: 1}, s.Scores())
	assert.Equal(t, "It's a draw! (1 – 1).", s.Summary())
}

func TestAllAnswered(t *testing.T) {
	s := startedSession(t, threeQuestions(), quiz.ModeSolo)

	assert.False(t, s.AllAnswered())
	require.NoError(t, s.SubmitAnswer(0))
	s.Advance()
	require.NoError(t, s.SubmitAnswer(0))
	assert.False(t, s.AllAnswered())
	s.Advance()
	require.NoError(t, s.SubmitAnswer(0))
	assert.True(t, s.AllAnswered())

	// AllAnswered never ends the session on its own.
	assert.False(t, s.Ended())
}

func TestUnansweredSlotsNeverScore(t *testing.T) {
	s := startedSession(t, threeQuestions(), quiz.ModeSolo)
	require.NoError(t, s.SubmitAnswer(0)) // correct, only answer

	s.End(quiz.EndTimeout)

	assert.Equal(t, quiz.Tally{1: 1, 2: 0}, s.Scores())
	for i := 1; i < s.Len(); i++ {
		_, set := s.Answer(i)
		assert.False(t, set, "slot %d must stay unset after timeout", i)
	}
}

func TestTimeLimitSeconds(t *testing.T) {
	assert.Equal(t, 300, quiz.TimeLimitSeconds(5, 60))
	assert.Equal(t, 0, quiz.TimeLimitSeconds(0, 60))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "05:00", quiz.FormatClock(300))
	assert.Equal(t, "00:09", quiz.FormatClock(9))
	assert.Equal(t, "00:00", quiz.FormatClock(-3))
}
