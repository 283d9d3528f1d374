package api

import (
	"net/http"
	"strconv"

	"github.com/arens/quizdeck/internal/errors"
	"github.com/arens/quizdeck/internal/models"
)

type scoreRequest struct {
	CategoryID     string `json:"category_id"`
	SubcategoryID  string `json:"subcategory_id"`
	Difficulty     string `json:"difficulty"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		handleError(w, r, errors.NewAuthRequiredError("save your score"))
		return
	}

	var req scoreRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	saved, err := s.Scores.Submit(r.Context(), userID, models.Score{
		CategoryID:     req.CategoryID,
		SubcategoryID:  req.SubcategoryID,
		Difficulty:     req.Difficulty,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ScoreFilter{
		CategoryID:    q.Get("category_id"),
		SubcategoryID: q.Get("subcategory_id"),
		Difficulty:    q.Get("difficulty"),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid limit parameter"))
			return
		}
		filter.Limit = limit
	}

	entries, err := s.Scores.Leaderboard(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleMyScores(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		handleError(w, r, errors.NewAuthRequiredError("view your scores"))
		return
	}

	scores, err := s.Scores.MyScores(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scores": scores})
}
