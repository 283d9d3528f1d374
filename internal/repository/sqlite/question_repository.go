package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/arens/quizdeck/internal/logger"
	"github.com/arens/quizdeck/internal/models"
	"github.com/arens/quizdeck/internal/repository"
)

type questionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new QuestionRepository implementation
func NewQuestionRepository(db *sql.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Get(ctx context.Context, id int64) (*models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("getting question: id=%d", id)

	var q models.Question
	var optionsJSON string
	err := r.db.QueryRowContext(ctx, `
SELECT id, category_id, subcategory_id, question, options, answer_index, difficulty, created_by, created_at
FROM questions
WHERE id = ?
`, id).Scan(&q.ID, &q.CategoryID, &q.SubcategoryID, &q.Text, &optionsJSON, &q.AnswerIndex, &q.Difficulty, &q.CreatedBy, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("question not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get question: %v", err)
		return nil, err
	}
	if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
		log.Error("failed to decode question options: %v", err)
		return nil, fmt.Errorf("decode options for question %d: %w", q.ID, err)
	}
	return &q, nil
}

func (r *questionRepository) List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("listing questions: category=%s, subcategory=%s, created_by=%d",
		filter.CategoryID, filter.SubcategoryID, filter.CreatedBy)

	query := sqlBuilder.Select(
		"id", "category_id", "subcategory_id", "question", "options",
		"answer_index", "difficulty", "created_by", "created_at",
	).From("questions")

	if filter.CategoryID != "" {
		query = query.Where(squirrel.Eq{"category_id": filter.CategoryID})
	}
	if filter.SubcategoryID != "" {
		query = query.Where(squirrel.Eq{"subcategory_id": filter.SubcategoryID})
	}

	// The public bank reads oldest first; an author's own listing reads
	// newest first.
	if filter.CreatedBy > 0 {
		query = query.Where(squirrel.Eq{"created_by": filter.CreatedBy}).OrderBy("created_at DESC", "id DESC")
	} else {
		query = query.OrderBy("created_at ASC", "id ASC")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build question query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		var optionsJSON string
		if err := rows.Scan(&q.ID, &q.CategoryID, &q.SubcategoryID, &q.Text, &optionsJSON, &q.AnswerIndex, &q.Difficulty, &q.CreatedBy, &q.CreatedAt); err != nil {
			log.Error("failed to scan question row: %v", err)
			return nil, err
		}
		if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
			log.Error("failed to decode question options: %v", err)
			return nil, fmt.Errorf("decode options for question %d: %w", q.ID, err)
		}
		questions = append(questions, q)
	}
	log.Debug("found %d questions", len(questions))
	return questions, rows.Err()
}

func (r *questionRepository) Insert(ctx context.Context, q models.Question) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("inserting question: category=%s, created_by=%d", q.CategoryID, q.CreatedBy)

	optionsJSON, err := json.Marshal(q.Options)
	if err != nil {
		return 0, fmt.Errorf("encode options: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO questions (category_id, subcategory_id, question, options, answer_index, difficulty, created_by)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, q.CategoryID, q.SubcategoryID, q.Text, string(optionsJSON), q.AnswerIndex, q.Difficulty, q.CreatedBy)
	if err != nil {
		log.Error("failed to insert question: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get question id: %v", err)
		return 0, err
	}
	log.Debug("question inserted: id=%d", id)
	return id, nil
}

func (r *questionRepository) Update(ctx context.Context, q models.Question) error {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("updating question: id=%d", q.ID)

	optionsJSON, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE questions
SET question = ?, options = ?, answer_index = ?, difficulty = ?
WHERE id = ?
`, q.Text, string(optionsJSON), q.AnswerIndex, q.Difficulty, q.ID)
	if err != nil {
		log.Error("failed to update question: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *questionRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("deleting question: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete question: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
