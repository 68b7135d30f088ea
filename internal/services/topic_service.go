package services

import (
	"context"

	"github.com/tallara/ozquiz/internal/errors"
	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/repository"
)

// TopicService tracks per-topic mastery and the curriculum unlock chain
type TopicService interface {
	// UpdateProgress upserts the topic percentage and reports whether the
	// topic transitioned to completed in this call.
	UpdateProgress(ctx context.Context, profileID int64, topic string, percentage int) (bool, error)
	SkillTree(ctx context.Context, profileID int64) (*models.SkillTreeSnapshot, error)
}

type topicService struct {
	topics repository.TopicRepository
}

// NewTopicService creates a new TopicService
func NewTopicService(topics repository.TopicRepository) TopicService {
	return &topicService{topics: topics}
}

func (s *topicService) UpdateProgress(ctx context.Context, profileID int64, topic string, percentage int) (bool, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating topic progress: profile_id=%d, topic=%s, pct=%d", profileID, topic, percentage)

	if models.TopicIndex(topic) < 0 {
		log.Warn("unknown topic %q, skipping progress update", topic)
		return false, errors.NewNotFoundError("topic", topic)
	}

	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}

	existing, err := s.topics.Get(ctx, profileID, topic)
	if err != nil {
		log.Error("failed to load topic progress: %v", err)
		return false, errors.NewInternalError(err)
	}

	// completed is terminal per topic per user.
	if existing != nil && existing.Status == models.TopicStatusCompleted {
		log.Debug("topic already completed, ignoring update: topic=%s", topic)
		return false, nil
	}

	status := models.TopicStatusInProgress
	if percentage >= 100 {
		status = models.TopicStatusCompleted
	}

	if err := s.topics.Upsert(ctx, models.TopicProgress{
		ProfileID:          profileID,
		Topic:              topic,
		ProgressPercentage: percentage,
		Status:             status,
	}); err != nil {
		log.Error("failed to upsert topic progress: %v", err)
		return false, errors.NewInternalError(err)
	}

	completedNow := status == models.TopicStatusCompleted
	if completedNow {
		log.Info("topic completed: profile_id=%d, topic=%s", profileID, topic)
		s.unlockNext(ctx, profileID, topic)
	}
	return completedNow, nil
}

// unlockNext moves the following curriculum topic from locked (or absent)
// to in_progress. The last topic unlocks nothing. Failures are logged,
// not fatal.
func (s *topicService) unlockNext(ctx context.Context, profileID int64, topic string) {
	log := logger.FromContext(ctx)

	next, ok := models.NextTopic(topic)
	if !ok {
		return
	}

	row, err := s.topics.Get(ctx, profileID, next)
	if err != nil {
		log.Warn("failed to check next topic %q: %v", next, err)
		return
	}
	if row != nil && row.Status != models.TopicStatusLocked {
		return
	}

	if err := s.topics.Upsert(ctx, models.TopicProgress{
		ProfileID:          profileID,
		Topic:              next,
		ProgressPercentage: 0,
		Status:             models.TopicStatusInProgress,
	}); err != nil {
		log.Warn("failed to unlock topic %q: %v", next, err)
		return
	}
	log.Info("topic unlocked: profile_id=%d, topic=%s", profileID, next)
}

func (s *topicService) SkillTree(ctx context.Context, profileID int64) (*models.SkillTreeSnapshot, error) {
	log := logger.FromContext(ctx)

	rows, err := s.topics.ListForProfile(ctx, profileID)
	if err != nil {
		log.Error("failed to load topic progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	byTopic := make(map[string]models.TopicProgress, len(rows))
	for _, r := range rows {
		byTopic[r.Topic] = r
	}

	snapshot := &models.SkillTreeSnapshot{Nodes: make([]models.SkillTreeNode, 0, len(models.Curriculum))}
	for i, topic := range models.Curriculum {
		node := models.SkillTreeNode{Topic: topic, Position: i, Status: models.TopicStatusLocked}
		if row, ok := byTopic[topic]; ok {
			node.Status = row.Status
			node.ProgressPercentage = row.ProgressPercentage
		} else if i == 0 {
			// The first topic is accessible even without a stored row.
			node.Status = models.TopicStatusInProgress
		}
		snapshot.Nodes = append(snapshot.Nodes, node)
	}
	return snapshot, nil
}
