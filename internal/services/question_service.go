package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/arens/quizdeck/internal/errors"
	"github.com/arens/quizdeck/internal/logger"
	"github.com/arens/quizdeck/internal/models"
	"github.com/arens/quizdeck/internal/repository"
)

// QuestionService handles the community question bank
type QuestionService interface {
	List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	ListMine(ctx context.Context, userID int64, filter models.QuestionFilter) ([]models.Question, error)
	Create(ctx context.Context, userID int64, q models.Question) (*models.Question, error)
	Update(ctx context.Context, id, userID int64, q models.Question) (*models.Question, error)
	Delete(ctx context.Context, id, userID int64) error
}

type questionService struct {
	bank repository.QuestionRepository
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(bank repository.QuestionRepository) QuestionService {
	return &questionService{bank: bank}
}

// authored loads a question and checks the caller wrote it.
func (s *questionService) authored(ctx context.Context, id, userID int64) (*models.Question, error) {
	q, err := s.bank.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if q == nil {
		return nil, errors.NewNotFoundError("question", id)
	}
	if q.CreatedBy != userID {
		return nil, errors.NewForbiddenError("question belongs to another user")
	}
	return q, nil
}

func validateBankQuestion(q models.Question) error {
	if q.CategoryID == "" {
		return errors.NewValidationError("category_id", "is required")
	}
	if strings.TrimSpace(q.Text) == "" {
		return errors.NewValidationError("question", "is required")
	}
	if len(q.Options) != 4 {
		return errors.NewValidationError("options", "exactly 4 options are required")
	}
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return errors.NewValidationError("options", "options cannot be empty")
		}
	}
	if q.AnswerIndex < 0 || q.AnswerIndex > 3 {
		return errors.NewValidationError("answerIndex", "must be between 0 and 3")
	}
	return nil
}

func (s *questionService) List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	log := logger.FromContext(ctx)

	filter.CreatedBy = 0
	questions, err := s.bank.List(ctx, filter)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return questions, nil
}

func (s *questionService) ListMine(ctx context.Context, userID int64, filter models.QuestionFilter) ([]models.Question, error) {
	log := logger.FromContext(ctx)

	filter.CreatedBy = userID
	questions, err := s.bank.List(ctx, filter)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return questions, nil
}

func (s *questionService) Create(ctx context.Context, userID int64, q models.Question) (*models.Question, error) {
	log := logger.FromContext(ctx)
	q.Text = strings.TrimSpace(q.Text)

	if err := validateBankQuestion(q); err != nil {
		return nil, err
	}

	q.CreatedBy = userID
	id, err := s.bank.Insert(ctx, q)
	if err != nil {
		log.Error("failed to insert question: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.bank.Get(ctx, id)
	if err != nil || created == nil {
		log.Error("failed to load new question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("question created: id=%d, user_id=%d, category=%s", id, userID, q.CategoryID)
	return created, nil
}

func (s *questionService) Update(ctx context.Context, id, userID int64, q models.Question) (*models.Question, error) {
	log := logger.FromContext(ctx)

	existing, err := s.authored(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	// Category and author are fixed at creation; only the content fields
	// are editable.
	q.ID = id
	q.CategoryID = existing.CategoryID
	q.SubcategoryID = existing.SubcategoryID
	q.Text = strings.TrimSpace(q.Text)
	if err := validateBankQuestion(q); err != nil {
		return nil, err
	}

	if err := s.bank.Update(ctx, q); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("question", id)
		}
		log.Error("failed to update question: %v", err)
		return nil, errors.NewInternalError(err)
	}

	updated, err := s.bank.Get(ctx, id)
	if err != nil || updated == nil {
		return nil, errors.NewInternalError(err)
	}
	return updated, nil
}

func (s *questionService) Delete(ctx context.Context, id, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.authored(ctx, id, userID); err != nil {
		return err
	}
	if err := s.bank.Delete(ctx, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("question", id)
		}
		log.Error("failed to delete question: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("question deleted: id=%d", id)
	return nil
}
