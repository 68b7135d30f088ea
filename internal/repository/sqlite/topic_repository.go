package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/repository"
)

type topicRepository struct {
	db *sql.DB
}

// NewTopicRepository creates a new TopicRepository implementation
func NewTopicRepository(db *sql.DB) repository.TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) Get(ctx context.Context, profileID int64, topic string) (*models.TopicProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")
	log.Debug("getting topic progress: profile_id=%d, topic=%s", profileID, topic)

	var tp models.TopicProgress
	err := r.db.QueryRowContext(ctx, `
SELECT id, profile_id, topic, progress_percentage, status, updated_at
FROM topic_progress
WHERE profile_id = ? AND topic = ?
`, profileID, topic).Scan(&tp.ID, &tp.ProfileID, &tp.Topic, &tp.ProgressPercentage, &tp.Status, &tp.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get topic progress: %v", err)
		return nil, err
	}
	return &tp, nil
}

func (r *topicRepository) ListForProfile(ctx context.Context, profileID int64) ([]models.TopicProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, profile_id, topic, progress_percentage, status, updated_at
FROM topic_progress
WHERE profile_id = ?
`, profileID)
	if err != nil {
		log.Error("failed to list topic progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	var list []models.TopicProgress
	for rows.Next() {
		var tp models.TopicProgress
		if err := rows.Scan(&tp.ID, &tp.ProfileID, &tp.Topic, &tp.ProgressPercentage, &tp.Status, &tp.UpdatedAt); err != nil {
			log.Error("failed to scan topic progress row: %v", err)
			return nil, err
		}
		list = append(list, tp)
	}
	log.Debug("found %d topic progress rows", len(list))
	return list, rows.Err()
}

func (r *topicRepository) Upsert(ctx context.Context, row models.TopicProgress) error {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")
	log.Debug("upserting topic progress: profile_id=%d, topic=%s, pct=%d, status=%s",
		row.ProfileID, row.Topic, row.ProgressPercentage, row.Status)

	// completed is terminal: a later lower-percentage write never regresses
	// the stored status or percentage.
	_, err := r.db.ExecContext(ctx, `
INSERT INTO topic_progress (profile_id, topic, progress_percentage, status, updated_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (profile_id, topic) DO UPDATE SET
    progress_percentage = CASE WHEN topic_progress.status = 'completed'
        THEN topic_progress.progress_percentage
        ELSE MAX(topic_progress.progress_percentage, excluded.progress_percentage) END,
    status = CASE WHEN topic_progress.status = 'completed'
        THEN topic_progress.status
        ELSE excluded.status END,
    updated_at = CURRENT_TIMESTAMP
`, row.ProfileID, row.Topic, row.ProgressPercentage, row.Status)
	if err != nil {
		log.Error("failed to upsert topic progress: %v", err)
	}
	return err
}
