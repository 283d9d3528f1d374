package api

import (
	"database/sql"

	"github.com/arens/quizdeck/internal/auth"
	"github.com/arens/quizdeck/internal/services"
)

type Server struct {
	DB        *sql.DB
	Tokens    *auth.Tokens
	Auth      services.AuthService
	Scores    services.ScoreService
	Quizzes   services.QuizService
	Questions services.QuestionService
}
