package repository

import (
	"context"

	"github.com/arens/quizdeck/internal/models"
)

// UserRepository handles user account data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Insert(ctx context.Context, username, passwordHash string) (int64, error)
}

// ScoreRepository handles score and leaderboard data access
type ScoreRepository interface {
	Insert(ctx context.Context, score models.Score) (int64, error)
	Leaderboard(ctx context.Context, filter models.ScoreFilter) ([]models.LeaderboardEntry, error)
	ScoresForUser(ctx context.Context, userID int64) ([]models.Score, error)
}

// QuestionRepository handles community question bank data access
type QuestionRepository interface {
	Get(ctx context.Context, id int64) (*models.Question, error)
	List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	Insert(ctx context.Context, q models.Question) (int64, error)
	Update(ctx context.Context, q models.Question) error
	Delete(ctx context.Context, id int64) error
}

// QuizRepository handles custom quiz data access
type QuizRepository interface {
	Get(ctx context.Context, id int64) (*models.CustomQuizWithQuestions, error)
	ListForUser(ctx context.Context, userID int64) ([]models.CustomQuiz, error)
	Insert(ctx context.Context, quiz models.CustomQuiz) (int64, error)
	UpdateTitle(ctx context.Context, id int64, title string) error
	Delete(ctx context.Context, id int64) error
	InsertQuestion(ctx context.Context, q models.CustomQuizQuestion) (int64, error)
	UpdateQuestion(ctx context.Context, q models.CustomQuizQuestion) error
	DeleteQuestion(ctx context.Context, quizID, questionID int64) error
}
