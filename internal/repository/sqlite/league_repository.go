package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/repository"
)

type leagueRepository struct {
	db *sql.DB
}

// NewLeagueRepository creates a new LeagueRepository implementation
func NewLeagueRepository(db *sql.DB) repository.LeagueRepository {
	return &leagueRepository{db: db}
}

func (r *leagueRepository) Get(ctx context.Context, profileID int64) (*models.LeagueStanding, error) {
	log := logger.FromContext(ctx).WithPrefix("league_repo")
	log.Debug("getting league standing: profile_id=%d", profileID)

	var s models.LeagueStanding
	err := r.db.QueryRowContext(ctx, `
SELECT id, profile_id, league_id, weekly_xp, updated_at
FROM league_standings
WHERE profile_id = ?
`, profileID).Scan(&s.ID, &s.ProfileID, &s.LeagueID, &s.WeeklyXP, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get league standing: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *leagueRepository) Insert(ctx context.Context, standing models.LeagueStanding) error {
	log := logger.FromContext(ctx).WithPrefix("league_repo")
	log.Debug("inserting league standing: profile_id=%d, league=%s, weekly_xp=%d",
		standing.ProfileID, standing.LeagueID, standing.WeeklyXP)

	_, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO league_standings (profile_id, league_id, weekly_xp)
VALUES (?, ?, ?)
`, standing.ProfileID, standing.LeagueID, standing.WeeklyXP)
	if err != nil {
		log.Error("failed to insert league standing: %v", err)
	}
	return err
}

func (r *leagueRepository) AddWeeklyXP(ctx context.Context, profileID int64, amount int) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("league_repo")
	log.Debug("adding weekly xp: profile_id=%d, amount=%d", profileID, amount)

	res, err := r.db.ExecContext(ctx, `
UPDATE league_standings
SET weekly_xp = weekly_xp + ?, updated_at = CURRENT_TIMESTAMP
WHERE profile_id = ?
`, amount, profileID)
	if err != nil {
		log.Error("failed to add weekly xp: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *leagueRepository) CountPeersAbove(ctx context.Context, leagueID string, weeklyXP int, excludeProfileID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("league_repo")

	query := sqlBuilder.Select("COUNT(*)").From("league_standings").
		Where(squirrel.Eq{"league_id": leagueID}).
		Where(squirrel.Gt{"weekly_xp": weeklyXP}).
		Where(squirrel.NotEq{"profile_id": excludeProfileID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count peers above: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *leagueRepository) TopPlayers(ctx context.Context, leagueID string, limit int) ([]models.LeaguePlayer, error) {
	log := logger.FromContext(ctx).WithPrefix("league_repo")
	log.Debug("fetching top players: league=%s, limit=%d", leagueID, limit)

	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT p.username, ls.weekly_xp
FROM league_standings ls
JOIN profiles p ON p.id = ls.profile_id
WHERE ls.league_id = ?
ORDER BY ls.weekly_xp DESC
LIMIT ?
`, leagueID, limit)
	if err != nil {
		log.Error("failed to query top players: %v", err)
		return nil, err
	}
	defer rows.Close()

	var players []models.LeaguePlayer
	for rows.Next() {
		var p models.LeaguePlayer
		if err := rows.Scan(&p.Username, &p.WeeklyXP); err != nil {
			log.Error("failed to scan league row: %v", err)
			return nil, err
		}
		players = append(players, p)
	}
	log.Debug("found %d real players", len(players))
	return players, rows.Err()
}
