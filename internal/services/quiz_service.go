package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/arens/quizdeck/internal/errors"
	"github.com/arens/quizdeck/internal/logger"
	"github.com/arens/quizdeck/internal/models"
	"github.com/arens/quizdeck/internal/quiz"
	"github.com/arens/quizdeck/internal/repository"
)

// QuizService handles custom quiz authoring and playback
type QuizService interface {
	Create(ctx context.Context, userID int64, title string) (*models.CustomQuizWithQuestions, error)
	List(ctx context.Context, userID int64) ([]models.CustomQuiz, error)
	Get(ctx context.Context, id, userID int64) (*models.CustomQuizWithQuestions, error)
	Rename(ctx context.Context, id, userID int64, title string) (*models.CustomQuizWithQuestions, error)
	Delete(ctx context.Context, id, userID int64) error
	AddQuestion(ctx context.Context, quizID, userID int64, q models.CustomQuizQuestion) (*models.CustomQuizQuestion, error)
	UpdateQuestion(ctx context.Context, quizID, questionID, userID int64, q models.CustomQuizQuestion) error
	DeleteQuestion(ctx context.Context, quizID, questionID, userID int64) error
	Play(ctx context.Context, id, userID int64) (string, []quiz.Question, error)
}

type quizService struct {
	quizzes repository.QuizRepository
}

// NewQuizService creates a new QuizService
func NewQuizService(quizzes repository.QuizRepository) QuizService {
	return &quizService{quizzes: quizzes}
}

// owned loads a quiz and checks the caller owns it.
func (s *quizService) owned(ctx context.Context, id, userID int64) (*models.CustomQuizWithQuestions, error) {
	q, err := s.quizzes.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if q == nil {
		return nil, errors.NewNotFoundError("quiz", id)
	}
	if q.UserID != userID {
		return nil, errors.NewForbiddenError("quiz belongs to another user")
	}
	return q, nil
}

func validateQuestion(q models.CustomQuizQuestion) error {
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

func (s *quizService) Create(ctx context.Context, userID int64, title string) (*models.CustomQuizWithQuestions, error) {
	log := logger.FromContext(ctx)
	title = strings.TrimSpace(title)
	log.Debug("creating quiz: user_id=%d, title=%s", userID, title)

	if title == "" {
		return nil, errors.NewValidationError("title", "is required")
	}

	id, err := s.quizzes.Insert(ctx, models.CustomQuiz{UserID: userID, Title: title})
	if err != nil {
		log.Error("failed to insert quiz: %v", err)
		return nil, errors.NewInternalError(err)
	}

	q, err := s.quizzes.Get(ctx, id)
	if err != nil || q == nil {
		log.Error("failed to load new quiz: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("quiz created: id=%d, user_id=%d", id, userID)
	return q, nil
}

func (s *quizService) List(ctx context.Context, userID int64) ([]models.CustomQuiz, error) {
	log := logger.FromContext(ctx)

	quizzes, err := s.quizzes.ListForUser(ctx, userID)
	if err != nil {
		log.Error("failed to list quizzes: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if quizzes == nil {
		quizzes = []models.CustomQuiz{}
	}
	return quizzes, nil
}

func (s *quizService) Get(ctx context.Context, id, userID int64) (*models.CustomQuizWithQuestions, error) {
	return s.owned(ctx, id, userID)
}

func (s *quizService) Rename(ctx context.Context, id, userID int64, title string) (*models.CustomQuizWithQuestions, error) {
	log := logger.FromContext(ctx)
	title = strings.TrimSpace(title)

	if title == "" {
		return nil, errors.NewValidationError("title", "is required")
	}
	if _, err := s.owned(ctx, id, userID); err != nil {
		return nil, err
	}
	if err := s.quizzes.UpdateTitle(ctx, id, title); err != nil {
		log.Error("failed to rename quiz: %v", err)
		return nil, errors.NewInternalError(err)
	}

	q, err := s.quizzes.Get(ctx, id)
	if err != nil || q == nil {
		return nil, errors.NewInternalError(err)
	}
	return q, nil
}

func (s *quizService) Delete(ctx context.Context, id, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.quizzes.Delete(ctx, id); err != nil {
		log.Error("failed to delete quiz: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("quiz deleted: id=%d", id)
	return nil
}

func (s *quizService) AddQuestion(ctx context.Context, quizID, userID int64, q models.CustomQuizQuestion) (*models.CustomQuizQuestion, error) {
	log := logger.FromContext(ctx)

	if _, err := s.owned(ctx, quizID, userID); err != nil {
		return nil, err
	}
	if err := validateQuestion(q); err != nil {
		return nil, err
	}

	q.QuizID = quizID
	id, err := s.quizzes.InsertQuestion(ctx, q)
	if err != nil {
		log.Error("failed to insert question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	q.ID = id
	log.Debug("question added: quiz_id=%d, question_id=%d", quizID, id)
	return &q, nil
}

func (s *quizService) UpdateQuestion(ctx context.Context, quizID, questionID, userID int64, q models.CustomQuizQuestion) error {
	log := logger.FromContext(ctx)

	if _, err := s.owned(ctx, quizID, userID); err != nil {
		return err
	}
	if err := validateQuestion(q); err != nil {
		return err
	}

	q.ID = questionID
	q.QuizID = quizID
	if err := s.quizzes.UpdateQuestion(ctx, q); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("question", questionID)
		}
		log.Error("failed to update question: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *quizService) DeleteQuestion(ctx context.Context, quizID, questionID, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.owned(ctx, quizID, userID); err != nil {
		return err
	}
	if err := s.quizzes.DeleteQuestion(ctx, quizID, questionID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("question", questionID)
		}
		log.Error("failed to delete question: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

// Play returns a quiz's questions in playable form. Quizzes are private:
// only their owner can play them.
func (s *quizService) Play(ctx context.Context, id, userID int64) (string, []quiz.Question, error) {
	cq, err := s.owned(ctx, id, userID)
	if err != nil {
		return "", nil, err
	}
	if len(cq.Questions) == 0 {
		return "", nil, errors.NewValidationError("questions", "quiz has no questions yet")
	}

	questions := make([]quiz.Question, 0, len(cq.Questions))
	for _, q := range cq.Questions {
		questions = append(questions, quiz.Question{
			Text:        q.Text,
			Options:     q.Options,
			AnswerIndex: q.AnswerIndex,
			Difficulty:  quiz.DifficultyMixed,
		})
	}
	return cq.Title, questions, nil
}
