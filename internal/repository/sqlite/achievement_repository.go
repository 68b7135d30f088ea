package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/repository"
)

type achievementRepository struct {
	db *sql.DB
}

// NewAchievementRepository creates a new AchievementRepository implementation
func NewAchievementRepository(db *sql.DB) repository.AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) CountDefinitions(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM achievements`).Scan(&count)
	return count, err
}

func (r *achievementRepository) InsertDefinitions(ctx context.Context, defs []models.Achievement) error {
	log := logger.FromContext(ctx).WithPrefix("achievement_repo")
	log.Debug("inserting %d achievement definitions", len(defs))

	return tx(ctx, r.db, func(t *sql.Tx) error {
		for _, d := range defs {
			if _, err := t.ExecContext(ctx, `
INSERT INTO achievements (name, description, xp_reward, secret)
VALUES (?, ?, ?, ?)
`, d.Name, d.Description, d.XPReward, d.Secret); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *achievementRepository) GetByName(ctx context.Context, name string) (*models.Achievement, error) {
	log := logger.FromContext(ctx).WithPrefix("achievement_repo")

	var a models.Achievement
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, description, xp_reward, secret
FROM achievements
WHERE name = ?
`, name).Scan(&a.ID, &a.Name, &a.Description, &a.XPReward, &a.Secret)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("achievement not found: name=%s", name)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get achievement: %v", err)
		return nil, err
	}
	return &a, nil
}

func (r *achievementRepository) HasUnlock(ctx context.Context, profileID, achievementID int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("achievement_repo")

	var one int
	err := r.db.QueryRowContext(ctx, `
SELECT 1 FROM user_achievements WHERE profile_id = ? AND achievement_id = ?
`, profileID, achievementID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		log.Error("failed to check unlock: %v", err)
		return false, err
	}
	return true, nil
}

func (r *achievementRepository) InsertUnlock(ctx context.Context, profileID, achievementID int64) error {
	log := logger.FromContext(ctx).WithPrefix("achievement_repo")
	log.Debug("inserting unlock: profile_id=%d, achievement_id=%d", profileID, achievementID)

	// The unique index backs up the caller's pre-check under concurrent
	// completions.
	_, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO user_achievements (profile_id, achievement_id)
VALUES (?, ?)
`, profileID, achievementID)
	if err != nil {
		log.Error("failed to insert unlock: %v", err)
	}
	return err
}

func (r *achievementRepository) ListUnlocked(ctx context.Context, profileID int64) ([]models.Achievement, error) {
	log := logger.FromContext(ctx).WithPrefix("achievement_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT a.id, a.name, a.description, a.xp_reward, a.secret
FROM user_achievements ua
JOIN achievements a ON a.id = ua.achievement_id
WHERE ua.profile_id = ?
ORDER BY ua.unlocked_at
`, profileID)
	if err != nil {
		log.Error("failed to list unlocked achievements: %v", err)
		return nil, err
	}
	defer rows.Close()

	var unlocked []models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.XPReward, &a.Secret); err != nil {
			log.Error("failed to scan achievement row: %v", err)
			return nil, err
		}
		unlocked = append(unlocked, a)
	}
	return unlocked, rows.Err()
}
