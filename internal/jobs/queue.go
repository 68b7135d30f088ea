package jobs

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueCatalogSeed() error
	EnqueueDailyQuests(profileID int64) error
}
