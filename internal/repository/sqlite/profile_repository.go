package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, username, current_xp, total_xp, level, daily_streak, last_streak_update, hearts, last_heart_regen, is_premium, created_at`

func scanProfile(row *sql.Row) (*models.Profile, error) {
	var p models.Profile
	var lastStreak sql.NullTime
	err := row.Scan(&p.ID, &p.Username, &p.CurrentXP, &p.TotalXP, &p.Level, &p.DailyStreak,
		&lastStreak, &p.Hearts, &p.LastHeartRegen, &p.IsPremium, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if lastStreak.Valid {
		t := lastStreak.Time
		p.LastStreakUpdate = &t
	}
	return &p, nil
}

func (r *profileRepository) Get(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: id=%d", id)

	p, err := scanProfile(r.db.QueryRowContext(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE id = ?
`, id))
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	if p == nil {
		log.Debug("profile not found: id=%d", id)
	}
	return p, nil
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: username=%s", username)

	p, err := scanProfile(r.db.QueryRowContext(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE username = ?
`, username))
	if err != nil {
		log.Error("failed to get profile by username: %v", err)
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT `+profileColumns+`
FROM profiles
ORDER BY username
`)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		var lastStreak sql.NullTime
		if err := rows.Scan(&p.ID, &p.Username, &p.CurrentXP, &p.TotalXP, &p.Level, &p.DailyStreak,
			&lastStreak, &p.Hearts, &p.LastHeartRegen, &p.IsPremium, &p.CreatedAt); err != nil {
			log.Error("failed to scan profile row: %v", err)
			return nil, err
		}
		if lastStreak.Valid {
			t := lastStreak.Time
			p.LastStreakUpdate = &t
		}
		profiles = append(profiles, p)
	}
	log.Debug("found %d profiles", len(profiles))
	return profiles, rows.Err()
}

func (r *profileRepository) Create(ctx context.Context, username string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("creating profile: username=%s", username)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO profiles (username, hearts, last_heart_regen)
VALUES (?, 5, CURRENT_TIMESTAMP)
`, username)
	if err != nil {
		log.Error("failed to create profile: %v", err)
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	log.Info("profile created: id=%d, username=%s", id, username)
	return r.Get(ctx, id)
}

func (r *profileRepository) UpdateStreak(ctx context.Context, id int64, streak int, lastUpdate time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("updating streak: id=%d, streak=%d", id, streak)

	_, err := r.db.ExecContext(ctx, `
UPDATE profiles
SET daily_streak = ?, last_streak_update = ?
WHERE id = ?
`, streak, lastUpdate, id)
	if err != nil {
		log.Error("failed to update streak: %v", err)
	}
	return err
}

func (r *profileRepository) UpdateHearts(ctx context.Context, id int64, hearts int, lastRegen time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("updating hearts: id=%d, hearts=%d", id, hearts)

	_, err := r.db.ExecContext(ctx, `
UPDATE profiles
SET hearts = ?, last_heart_regen = ?
WHERE id = ?
`, hearts, lastRegen, id)
	if err != nil {
		log.Error("failed to update hearts: %v", err)
	}
	return err
}

func (r *profileRepository) IncrementXP(ctx context.Context, id int64, amount int) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("incrementing xp: id=%d, amount=%d", id, amount)

	// Single UPDATE with in-place arithmetic: the increment is atomic at
	// the store, level and current_xp stay derived from the new total.
	_, err := r.db.ExecContext(ctx, `
UPDATE profiles
SET total_xp = total_xp + ?,
    level = (total_xp + ?) / 1000 + 1,
    current_xp = (total_xp + ?) % 1000
WHERE id = ?
`, amount, amount, amount, id)
	if err != nil {
		log.Error("failed to increment xp: %v", err)
	}
	return err
}
