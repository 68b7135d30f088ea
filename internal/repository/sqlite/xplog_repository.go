package sqlite

import (
	"context"
	"database/sql"

	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/repository"
)

type xpLogRepository struct {
	db *sql.DB
}

// NewXPLogRepository creates a new XPLogRepository implementation
func NewXPLogRepository(db *sql.DB) repository.XPLogRepository {
	return &xpLogRepository{db: db}
}

func (r *xpLogRepository) Insert(ctx context.Context, entry models.XPLogEntry) error {
	log := logger.FromContext(ctx).WithPrefix("xplog_repo")
	log.Debug("logging xp grant: profile_id=%d, amount=%d, source=%s", entry.ProfileID, entry.Amount, entry.Source)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO xp_log (profile_id, amount, source, detail)
VALUES (?, ?, ?, ?)
`, entry.ProfileID, entry.Amount, entry.Source, entry.Detail)
	if err != nil {
		log.Error("failed to insert xp log entry: %v", err)
	}
	return err
}

func (r *xpLogRepository) RecentByProfile(ctx context.Context, profileID int64, limit int) ([]models.XPLogEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("xplog_repo")

	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, profile_id, amount, source, detail, created_at
FROM xp_log
WHERE profile_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`, profileID, limit)
	if err != nil {
		log.Error("failed to query xp log: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.XPLogEntry
	for rows.Next() {
		var e models.XPLogEntry
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Amount, &e.Source, &e.Detail, &e.CreatedAt); err != nil {
			log.Error("failed to scan xp log row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
