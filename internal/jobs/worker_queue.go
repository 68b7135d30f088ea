package jobs

import (
	"github.com/tallara/ozquiz/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool         *worker.Pool
	quests       worker.QuestTasks
	achievements worker.CatalogSeeder
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, quests worker.QuestTasks, achievements worker.CatalogSeeder) JobQueue {
	return &WorkerQueue{
		pool:         pool,
		quests:       quests,
		achievements: achievements,
	}
}

func (q *WorkerQueue) EnqueueCatalogSeed() error {
	return q.pool.Submit(&worker.SeedCatalogJob{
		Quests:       q.quests,
		Achievements: q.achievements,
	})
}

func (q *WorkerQueue) EnqueueDailyQuests(profileID int64) error {
	return q.pool.Submit(&worker.DailyQuestsJob{
		Quests:    q.quests,
		ProfileID: profileID,
	})
}
