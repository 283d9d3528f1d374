package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/questions", s.handleListBankQuestions)

		// Everything below needs a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/me", s.handleMe)
			r.Get("/custom-quizzes/{id}/play", s.handlePlayQuiz)
			r.Post("/scores", s.handleSubmitScore)
			r.Get("/my/scores", s.handleMyScores)

			r.Post("/questions", s.handleCreateBankQuestion)
			r.Get("/my/questions", s.handleMyBankQuestions)
			r.Put("/my/questions/{id}", s.handleUpdateBankQuestion)
			r.Delete("/my/questions/{id}", s.handleDeleteBankQuestion)

			r.Route("/my/quizzes", func(r chi.Router) {
				r.Get("/", s.handleListQuizzes)
				r.Post("/", s.handleCreateQuiz)
				r.Get("/{id}", s.handleGetQuiz)
				r.Put("/{id}", s.handleRenameQuiz)
				r.Delete("/{id}", s.handleDeleteQuiz)
				r.Post("/{id}/questions", s.handleAddQuestion)
				r.Put("/{id}/questions/{qid}", s.handleUpdateQuestion)
				r.Delete("/{id}/questions/{qid}", s.handleDeleteQuestion)
			})
		})
	})

	return r
}
