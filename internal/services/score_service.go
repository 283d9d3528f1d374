package services

import (
	"context"

	"github.com/arens/quizdeck/internal/errors"
	"github.com/arens/quizdeck/internal/logger"
	"github.com/arens/quizdeck/internal/models"
	"github.com/arens/quizdeck/internal/questions"
	"github.com/arens/quizdeck/internal/quiz"
	"github.com/arens/quizdeck/internal/repository"
)

// ScoreService handles score submission and leaderboard queries
type ScoreService interface {
	Submit(ctx context.Context, userID int64, score models.Score) (*models.Score, error)
	Leaderboard(ctx context.Context, filter models.ScoreFilter) ([]models.LeaderboardEntry, error)
	MyScores(ctx context.Context, userID int64) ([]models.Score, error)
}

type scoreService struct {
	scores           repository.ScoreRepository
	leaderboardLimit int
}

// NewScoreService creates a new ScoreService
func NewScoreService(scores repository.ScoreRepository, leaderboardLimit int) ScoreService {
	return &scoreService{scores: scores, leaderboardLimit: leaderboardLimit}
}

func (s *scoreService) Submit(ctx context.Context, userID int64, score models.Score) (*models.Score, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting score: user_id=%d, subcategory=%s, score=%d/%d",
		userID, score.SubcategoryID, score.Score, score.TotalQuestions)

	if score.SubcategoryID == "" {
		return nil, errors.NewValidationError("subcategory_id", "is required")
	}
	if score.TotalQuestions < 1 {
		return nil, errors.NewValidationError("total_questions", "must be at least 1")
	}
	if score.Score < 0 || score.Score > score.TotalQuestions {
		return nil, errors.NewValidationError("score", "must be between 0 and total_questions")
	}

	switch score.Difficulty {
	case "", quiz.DifficultyMixed:
		score.Difficulty = quiz.DifficultyMixed
	case quiz.DifficultyEasy, quiz.DifficultyMedium, quiz.DifficultyHard:
	default:
		return nil, errors.NewValidationError("difficulty", "must be mixed, easy, medium or hard")
	}

	// Catalog subcategories get their category from the catalog itself so
	// clients cannot file a score under the wrong group. Unknown ids
	// (custom quizzes) keep whatever category the client sent.
	if group, _, ok := questions.FindSubcategory(score.SubcategoryID); ok {
		score.CategoryID = group.ID
	} else if score.CategoryID == "" {
		return nil, errors.NewValidationError("category_id", "is required for unknown subcategories")
	}

	score.UserID = userID
	id, err := s.scores.Insert(ctx, score)
	if err != nil {
		log.Error("failed to insert score: %v", err)
		return nil, errors.NewInternalError(err)
	}
	score.ID = id

	log.Info("score recorded: id=%d, user_id=%d, %d/%d", id, userID, score.Score, score.TotalQuestions)
	return &score, nil
}

func (s *scoreService) Leaderboard(ctx context.Context, filter models.ScoreFilter) ([]models.LeaderboardEntry, error) {
	log := logger.FromContext(ctx)

	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = s.leaderboardLimit
	}

	entries, err := s.scores.Leaderboard(ctx, filter)
	if err != nil {
		log.Error("failed to query leaderboard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	return entries, nil
}

func (s *scoreService) MyScores(ctx context.Context, userID int64) ([]models.Score, error) {
	log := logger.FromContext(ctx)

	scores, err := s.scores.ScoresForUser(ctx, userID)
	if err != nil {
		log.Error("failed to list scores: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if scores == nil {
		scores = []models.Score{}
	}
	return scores, nil
}
