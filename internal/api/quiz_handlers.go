package api

import (
	"net/http"

	"github.com/arens/quizdeck/internal/errors"
	"github.com/arens/quizdeck/internal/models"
	"github.com/arens/quizdeck/internal/quiz"
)

type quizRequest struct {
	Title string `json:"title"`
}

type questionRequest struct {
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
}

type playResponse struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Questions []quiz.Question `json:"questions"`
}

func (s *Server) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		handleError(w, r, errors.NewAuthRequiredError("manage your quizzes"))
		return
	}

	quizzes, err := s.Quizzes.List(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quizzes": quizzes})
}

func (s *Server) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		handleError(w, r, errors.NewAuthRequiredError("create a quiz"))
		return
	}

	var req quizRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := s.Quizzes.Create(r.Context(), userID, req.Title)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	q, err := s.Quizzes.Get(r.Context(), id, userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleRenameQuiz(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req quizRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	q, err := s.Quizzes.Rename(r.Context(), id, userID, req.Title)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleDeleteQuiz(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Quizzes.Delete(r.Context(), id, userID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req questionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	added, err := s.Quizzes.AddQuestion(r.Context(), id, userID, models.CustomQuizQuestion{
		Text:        req.Text,
		Options:     req.Options,
		AnswerIndex: req.AnswerIndex,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	qid, err := idParam(r, "qid")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req questionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Quizzes.UpdateQuestion(r.Context(), id, qid, userID, models.CustomQuizQuestion{
		Text:        req.Text,
		Options:     req.Options,
		AnswerIndex: req.AnswerIndex,
	}); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	qid, err := idParam(r, "qid")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Quizzes.DeleteQuestion(r.Context(), id, qid, userID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlayQuiz(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	title, playable, err := s.Quizzes.Play(r.Context(), id, userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playResponse{ID: id, Title: title, Questions: playable})
}
