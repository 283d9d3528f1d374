package api

import (
	"net/http"

	"github.com/arens/quizdeck/internal/errors"
	"github.com/arens/quizdeck/internal/models"
)

type bankQuestionRequest struct {
	CategoryID    string   `json:"category_id"`
	SubcategoryID string   `json:"subcategory_id"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	AnswerIndex   int      `json:"answerIndex"`
	Difficulty    string   `json:"difficulty"`
}

func bankFilter(r *http.Request) models.QuestionFilter {
	q := r.URL.Query()
	return models.QuestionFilter{
		CategoryID:    q.Get("category_id"),
		SubcategoryID: q.Get("subcategory_id"),
	}
}

func (s *Server) handleListBankQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := s.Questions.List(r.Context(), bankFilter(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

func (s *Server) handleCreateBankQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		handleError(w, r, errors.NewAuthRequiredError("contribute a question"))
		return
	}

	var req bankQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := s.Questions.Create(r.Context(), userID, models.Question{
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Text:          req.Text,
		Options:       req.Options,
		AnswerIndex:   req.AnswerIndex,
		Difficulty:    req.Difficulty,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleMyBankQuestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		handleError(w, r, errors.NewAuthRequiredError("view your questions"))
		return
	}

	questions, err := s.Questions.ListMine(r.Context(), userID, bankFilter(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

func (s *Server) handleUpdateBankQuestion(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req bankQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.Questions.Update(r.Context(), id, userID, models.Question{
		Text:        req.Text,
		Options:     req.Options,
		AnswerIndex: req.AnswerIndex,
		Difficulty:  req.Difficulty,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteBankQuestion(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Questions.Delete(r.Context(), id, userID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
