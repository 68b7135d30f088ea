package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/repository"
)

type questRepository struct {
	db *sql.DB
}

// NewQuestRepository creates a new QuestRepository implementation
func NewQuestRepository(db *sql.DB) repository.QuestRepository {
	return &questRepository{db: db}
}

func (r *questRepository) CountDefinitions(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quest_definitions`).Scan(&count)
	return count, err
}

func (r *questRepository) ListDefinitions(ctx context.Context) ([]models.QuestDefinition, error) {
	log := logger.FromContext(ctx).WithPrefix("quest_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, description, type, topic, requirement, xp_reward
FROM quest_definitions
ORDER BY id
`)
	if err != nil {
		log.Error("failed to list quest definitions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var defs []models.QuestDefinition
	for rows.Next() {
		var d models.QuestDefinition
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.Type, &d.Topic, &d.Requirement, &d.XPReward); err != nil {
			log.Error("failed to scan quest definition row: %v", err)
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

func (r *questRepository) InsertDefinitions(ctx context.Context, defs []models.QuestDefinition) error {
	log := logger.FromContext(ctx).WithPrefix("quest_repo")
	log.Debug("inserting %d quest definitions", len(defs))

	return tx(ctx, r.db, func(t *sql.Tx) error {
		for _, d := range defs {
			if _, err := t.ExecContext(ctx, `
INSERT INTO quest_definitions (title, description, type, topic, requirement, xp_reward)
VALUES (?, ?, ?, ?, ?, ?)
`, d.Title, d.Description, d.Type, d.Topic, d.Requirement, d.XPReward); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *questRepository) ActiveForProfile(ctx context.Context, profileID int64, now time.Time) ([]models.UserQuestWithDefinition, error) {
	log := logger.FromContext(ctx).WithPrefix("quest_repo")
	log.Debug("fetching active quests: profile_id=%d", profileID)

	rows, err := r.db.QueryContext(ctx, `
SELECT uq.id, uq.profile_id, uq.quest_id, uq.progress, uq.is_completed, uq.completed_at, uq.assigned_at, uq.expires_at,
       qd.title, qd.description, qd.type, qd.topic, qd.requirement, qd.xp_reward
FROM user_quests uq
JOIN quest_definitions qd ON qd.id = uq.quest_id
WHERE uq.profile_id = ? AND uq.expires_at > ?
ORDER BY uq.id
`, profileID, now)
	if err != nil {
		log.Error("failed to query active quests: %v", err)
		return nil, err
	}
	defer rows.Close()

	var quests []models.UserQuestWithDefinition
	for rows.Next() {
		var q models.UserQuestWithDefinition
		var completedAt sql.NullTime
		if err := rows.Scan(&q.ID, &q.ProfileID, &q.QuestID, &q.Progress, &q.IsCompleted, &completedAt, &q.AssignedAt, &q.ExpiresAt,
			&q.Title, &q.Description, &q.Type, &q.Topic, &q.Requirement, &q.XPReward); err != nil {
			log.Error("failed to scan quest row: %v", err)
			return nil, err
		}
		if completedAt.Valid {
			t := completedAt.Time
			q.CompletedAt = &t
		}
		quests = append(quests, q)
	}
	log.Debug("found %d active quests", len(quests))
	return quests, rows.Err()
}

func (r *questRepository) CountAssignedBetween(ctx context.Context, profileID int64, from, to time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("quest_repo")

	query := sqlBuilder.Select("COUNT(*)").From("user_quests").
		Where(squirrel.Eq{"profile_id": profileID}).
		Where(squirrel.GtOrEq{"assigned_at": from}).
		Where(squirrel.Lt{"assigned_at": to})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count assigned quests: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *questRepository) InsertInstances(ctx context.Context, instances []models.UserQuest) error {
	log := logger.FromContext(ctx).WithPrefix("quest_repo")
	log.Debug("inserting %d quest instances", len(instances))

	return tx(ctx, r.db, func(t *sql.Tx) error {
		for _, q := range instances {
			if _, err := t.ExecContext(ctx, `
INSERT INTO user_quests (profile_id, quest_id, progress, is_completed, assigned_at, expires_at)
VALUES (?, ?, ?, ?, ?, ?)
`, q.ProfileID, q.QuestID, q.Progress, q.IsCompleted, q.AssignedAt, q.ExpiresAt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *questRepository) UpdateInstanceProgress(ctx context.Context, id int64, progress int, completed bool, completedAt *time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("quest_repo")
	log.Debug("updating quest instance: id=%d, progress=%d, completed=%v", id, progress, completed)

	// is_completed never transitions back and progress never decreases.
	_, err := r.db.ExecContext(ctx, `
UPDATE user_quests
SET progress = MAX(progress, ?),
    is_completed = is_completed OR ?,
    completed_at = COALESCE(completed_at, ?)
WHERE id = ?
`, progress, completed, completedAt, id)
	if err != nil {
		log.Error("failed to update quest instance: %v", err)
	}
	return err
}
