package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/repository"
)

type attemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Insert(ctx context.Context, a models.QuizAttempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("inserting attempt: profile_id=%d, kind=%s, score=%d/%d", a.ProfileID, a.Kind, a.Score, a.TotalQuestions)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO quiz_attempts (profile_id, attempt_key, kind, topic, score, total_questions, xp_earned)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, a.ProfileID, a.AttemptKey, a.Kind, a.Topic, a.Score, a.TotalQuestions, a.XPEarned)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get attempt id: %v", err)
		return 0, err
	}
	log.Debug("attempt inserted: id=%d", id)
	return id, nil
}

func (r *attemptRepository) CountByProfile(ctx context.Context, profileID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM quiz_attempts WHERE profile_id = ?
`, profileID).Scan(&count)
	if err != nil {
		log.Error("failed to count attempts: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *attemptRepository) RecentByProfile(ctx context.Context, profileID int64, limit int) ([]models.QuizAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("fetching recent attempts: profile_id=%d, limit=%d", profileID, limit)

	if limit <= 0 {
		limit = 20
	}

	query := sqlBuilder.Select(
		"id", "profile_id", "attempt_key", "kind", "topic", "score", "total_questions", "xp_earned", "created_at",
	).From("quiz_attempts").
		Where(squirrel.Eq{"profile_id": profileID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.QuizAttempt
	for rows.Next() {
		var a models.QuizAttempt
		if err := rows.Scan(&a.ID, &a.ProfileID, &a.AttemptKey, &a.Kind, &a.Topic, &a.Score, &a.TotalQuestions, &a.XPEarned, &a.CreatedAt); err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		attempts = append(attempts, a)
	}
	log.Debug("found %d attempts", len(attempts))
	return attempts, rows.Err()
}
