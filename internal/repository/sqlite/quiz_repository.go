package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arens/quizdeck/internal/logger"
	"github.com/arens/quizdeck/internal/models"
	"github.com/arens/quizdeck/internal/repository"
)

type quizRepository struct {
	db *sql.DB
}

// NewQuizRepository creates a new QuizRepository implementation
func NewQuizRepository(db *sql.DB) repository.QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Get(ctx context.Context, id int64) (*models.CustomQuizWithQuestions, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("getting quiz: id=%d", id)

	var q models.CustomQuizWithQuestions
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, title, created_at, updated_at
FROM custom_quizzes
WHERE id = ?
`, id).Scan(&q.ID, &q.UserID, &q.Title, &q.CreatedAt, &q.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("quiz not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get quiz: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, quiz_id, question, options, answer_index, position
FROM custom_quiz_questions
WHERE quiz_id = ?
ORDER BY position ASC
`, id)
	if err != nil {
		log.Error("failed to query quiz questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cq models.CustomQuizQuestion
		var optionsJSON string
		if err := rows.Scan(&cq.ID, &cq.QuizID, &cq.Text, &optionsJSON, &cq.AnswerIndex, &cq.Position); err != nil {
			log.Error("failed to scan quiz question row: %v", err)
			return nil, err
		}
		if err := json.Unmarshal([]byte(optionsJSON), &cq.Options); err != nil {
			log.Error("failed to decode question options: %v", err)
			return nil, fmt.Errorf("decode options for question %d: %w", cq.ID, err)
		}
		q.Questions = append(q.Questions, cq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	q.QuestionCount = len(q.Questions)

	log.Debug("quiz found: title=%s, questions=%d", q.Title, q.QuestionCount)
	return &q, nil
}

func (r *quizRepository) ListForUser(ctx context.Context, userID int64) ([]models.CustomQuiz, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("listing quizzes: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT q.id, q.user_id, q.title, q.created_at, q.updated_at,
       (SELECT COUNT(*) FROM custom_quiz_questions cq WHERE cq.quiz_id = q.id) AS question_count
FROM custom_quizzes q
WHERE q.user_id = ?
ORDER BY q.updated_at DESC
`, userID)
	if err != nil {
		log.Error("failed to list quizzes: %v", err)
		return nil, err
	}
	defer rows.Close()

	var quizzes []models.CustomQuiz
	for rows.Next() {
		var q models.CustomQuiz
		if err := rows.Scan(&q.ID, &q.UserID, &q.Title, &q.CreatedAt, &q.UpdatedAt, &q.QuestionCount); err != nil {
			log.Error("failed to scan quiz row: %v", err)
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	log.Debug("found %d quizzes", len(quizzes))
	return quizzes, rows.Err()
}

func (r *quizRepository) Insert(ctx context.Context, q models.CustomQuiz) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("inserting quiz: user_id=%d, title=%s", q.UserID, q.Title)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO custom_quizzes (user_id, title)
VALUES (?, ?)
`, q.UserID, q.Title)
	if err != nil {
		log.Error("failed to insert quiz: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get quiz id: %v", err)
		return 0, err
	}
	log.Debug("quiz inserted: id=%d", id)
	return id, nil
}

func (r *quizRepository) UpdateTitle(ctx context.Context, id int64, title string) error {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("updating quiz title: id=%d", id)

	_, err := r.db.ExecContext(ctx, `
UPDATE custom_quizzes
SET title = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, title, id)
	if err != nil {
		log.Error("failed to update quiz title: %v", err)
	}
	return err
}

func (r *quizRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("deleting quiz: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM custom_quizzes WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete quiz: %v", err)
	}
	return err
}

func (r *quizRepository) InsertQuestion(ctx context.Context, cq models.CustomQuizQuestion) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("inserting quiz question: quiz_id=%d", cq.QuizID)

	optionsJSON, err := json.Marshal(cq.Options)
	if err != nil {
		return 0, fmt.Errorf("encode options: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO custom_quiz_questions (quiz_id, question, options, answer_index, position)
VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM custom_quiz_questions WHERE quiz_id = ?))
`, cq.QuizID, cq.Text, string(optionsJSON), cq.AnswerIndex, cq.QuizID)
	if err != nil {
		log.Error("failed to insert quiz question: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get question id: %v", err)
		return 0, err
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE custom_quizzes SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, cq.QuizID); err != nil {
		log.Error("failed to touch quiz: %v", err)
		return 0, err
	}
	log.Debug("quiz question inserted: id=%d", id)
	return id, nil
}

func (r *quizRepository) UpdateQuestion(ctx context.Context, cq models.CustomQuizQuestion) error {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("updating quiz question: id=%d, quiz_id=%d", cq.ID, cq.QuizID)

	optionsJSON, err := json.Marshal(cq.Options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE custom_quiz_questions
SET question = ?, options = ?, answer_index = ?
WHERE id = ? AND quiz_id = ?
`, cq.Text, string(optionsJSON), cq.AnswerIndex, cq.ID, cq.QuizID)
	if err != nil {
		log.Error("failed to update quiz question: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	_, err = r.db.ExecContext(ctx, `UPDATE custom_quizzes SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, cq.QuizID)
	return err
}

func (r *quizRepository) DeleteQuestion(ctx context.Context, quizID, questionID int64) error {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("deleting quiz question: id=%d, quiz_id=%d", questionID, quizID)

	res, err := r.db.ExecContext(ctx, `
DELETE FROM custom_quiz_questions
WHERE id = ? AND quiz_id = ?
`, questionID, quizID)
	if err != nil {
		log.Error("failed to delete quiz question: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	_, err = r.db.ExecContext(ctx, `UPDATE custom_quizzes SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, quizID)
	return err
}
