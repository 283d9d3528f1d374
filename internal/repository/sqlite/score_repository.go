package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/arens/quizdeck/internal/logger"
	"github.com/arens/quizdeck/internal/models"
	"github.com/arens/quizdeck/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type scoreRepository struct {
	db *sql.DB
}

// NewScoreRepository creates a new ScoreRepository implementation
func NewScoreRepository(db *sql.DB) repository.ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Insert(ctx context.Context, s models.Score) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("inserting score: user_id=%d, subcategory=%s, score=%d/%d", s.UserID, s.SubcategoryID, s.Score, s.TotalQuestions)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO scores (user_id, category_id, subcategory_id, difficulty, score, total_questions)
VALUES (?, ?, ?, ?, ?, ?)
`, s.UserID, s.CategoryID, s.SubcategoryID, s.Difficulty, s.Score, s.TotalQuestions)
	if err != nil {
		log.Error("failed to insert score: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get score id: %v", err)
		return 0, err
	}
	log.Debug("score inserted: id=%d", id)
	return id, nil
}

func (r *scoreRepository) Leaderboard(ctx context.Context, filter models.ScoreFilter) ([]models.LeaderboardEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("querying leaderboard: category=%s, subcategory=%s, difficulty=%s, limit=%d",
		filter.CategoryID, filter.SubcategoryID, filter.Difficulty, filter.Limit)

	query := sqlBuilder.Select(
		"u.username", "s.category_id", "s.subcategory_id", "s.difficulty",
		"s.score", "s.total_questions", "s.created_at",
	).From("scores s").Join("users u ON u.id = s.user_id")

	// Dynamic WHERE clauses
	if filter.CategoryID != "" {
		query = query.Where(squirrel.Eq{"s.category_id": filter.CategoryID})
	}
	if filter.SubcategoryID != "" {
		query = query.Where(squirrel.Eq{"s.subcategory_id": filter.SubcategoryID})
	}
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"s.difficulty": filter.Difficulty})
	}

	// Best scores first, earliest submission breaking ties
	query = query.OrderBy("s.score DESC", "s.created_at ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	query = query.Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build leaderboard query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query leaderboard: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.CategoryID, &e.SubcategoryID, &e.Difficulty, &e.Score, &e.TotalQuestions, &e.CreatedAt); err != nil {
			log.Error("failed to scan leaderboard row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	log.Debug("found %d leaderboard entries", len(entries))
	return entries, rows.Err()
}

func (r *scoreRepository) ScoresForUser(ctx context.Context, userID int64) ([]models.Score, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("listing scores: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, category_id, subcategory_id, difficulty, score, total_questions, created_at
FROM scores
WHERE user_id = ?
ORDER BY created_at DESC
`, userID)
	if err != nil {
		log.Error("failed to list scores: %v", err)
		return nil, err
	}
	defer rows.Close()

	var scores []models.Score
	for rows.Next() {
		var s models.Score
		if err := rows.Scan(&s.ID, &s.UserID, &s.CategoryID, &s.SubcategoryID, &s.Difficulty, &s.Score, &s.TotalQuestions, &s.CreatedAt); err != nil {
			log.Error("failed to scan score row: %v", err)
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}
