package models

import "time"

type CustomQuiz struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CustomQuizQuestion struct {
	ID          int64    `json:"id"`
	QuizID      int64    `json:"quiz_id"`
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Position    int      `json:"position"`
}

// CustomQuizWithQuestions is the full editable quiz as returned by the
// detail and play endpoints.
type CustomQuizWithQuestions struct {
	CustomQuiz
	Questions []CustomQuizQuestion `json:"questions"`
}
