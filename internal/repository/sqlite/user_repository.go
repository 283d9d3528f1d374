package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/arens/quizdeck/internal/logger"
	"github.com/arens/quizdeck/internal/models"
	"github.com/arens/quizdeck/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, password_hash, created_at
FROM users
WHERE id = ?
`, id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user by username: %s", username)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, password_hash, created_at
FROM users
WHERE username = ?
`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: username=%s", username)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user by username: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Insert(ctx context.Context, username, passwordHash string) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("inserting user: username=%s", username)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, password_hash)
VALUES (?, ?)
`, username, passwordHash)
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get user id: %v", err)
		return 0, err
	}
	log.Debug("user inserted: id=%d", id)
	return id, nil
}
