package quiz

import "fmt"

// Difficulty tags carried by questions and used by the selection policy.
// DifficultyMixed means "no filtering".
const (
	DifficultyMixed  = "mixed"
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question is a single multiple-choice question. Immutable once loaded;
// each session owns its own slice of questions.
type Question struct {
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Difficulty  string   `json:"difficulty"`
}

// Validate checks that the question has 2-4 options and an in-range answer index.
func (q Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) < 2 || len(q.Options) > 4 {
		return fmt.Errorf("question must have 2-4 options, got %d", len(q.Options))
	}
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
		return fmt.Errorf("answer index %d out of range for %d options", q.AnswerIndex, len(q.Options))
	}
	return nil
}
