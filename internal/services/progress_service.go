package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tallara/ozquiz/internal/errors"
	"github.com/tallara/ozquiz/internal/gamification"
	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/repository"
)

// QuizCompletionInput is one submitted quiz result.
type QuizCompletionInput struct {
	Topic          string
	Score          int
	TotalQuestions int
	XPEarned       int
	TopicProgress  int
}

// MockTestCompletionInput is one submitted mock test result. Mock tests
// are topic-less and life-less.
type MockTestCompletionInput struct {
	Score          int
	TotalQuestions int
	XPEarned       int
	Passed         bool
}

// ProgressService orchestrates everything that happens when a quiz or
// mock test finishes: streak, XP and level, hearts, the attempt log,
// quest progress, topic mastery, league standing and achievements.
type ProgressService interface {
	// StartQuiz applies heart regeneration and gates quiz entry. It does
	// not consume a heart; ConsumeHeart is called on quiz failure.
	StartQuiz(ctx context.Context, profileID int64) (*models.HeartStatus, error)
	ConsumeHeart(ctx context.Context, profileID int64) (*models.HeartStatus, error)
	HeartStatus(ctx context.Context, profileID int64) (*models.HeartStatus, error)
	RecordQuizCompletion(ctx context.Context, profileID int64, input QuizCompletionInput) (*models.CompletionResult, error)
	RecordMockTestCompletion(ctx context.Context, profileID int64, input MockTestCompletionInput) (*models.CompletionResult, error)
}

type progressService struct {
	profiles     repository.ProfileRepository
	attempts     repository.AttemptRepository
	xpLog        repository.XPLogRepository
	quests       QuestService
	achievements AchievementService
	topics       TopicService
	league       LeagueService
	heartRefill  time.Duration
	now          func() time.Time
}

type ProgressOption func(*progressService)

// WithClock overrides the service clock, used by tests.
func WithClock(now func() time.Time) ProgressOption {
	return func(s *progressService) { s.now = now }
}

// NewProgressService creates a new ProgressService
func NewProgressService(
	profiles repository.ProfileRepository,
	attempts repository.AttemptRepository,
	xpLog repository.XPLogRepository,
	quests QuestService,
	achievements AchievementService,
	topics TopicService,
	league LeagueService,
	heartRefill time.Duration,
	opts ...ProgressOption,
) ProgressService {
	s := &progressService{
		profiles:     profiles,
		attempts:     attempts,
		xpLog:        xpLog,
		quests:       quests,
		achievements: achievements,
		topics:       topics,
		league:       league,
		heartRefill:  heartRefill,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// effectRecorder collects best-effort sub-operation failures from the
// concurrent fan-out.
type effectRecorder struct {
	mu       sync.Mutex
	failures []models.SideEffectFailure
}

func (r *effectRecorder) record(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, models.SideEffectFailure{Op: op, Error: err.Error()})
}

func (r *effectRecorder) report() models.SideEffectReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return models.SideEffectReport{Failures: r.failures}
}

func (s *progressService) StartQuiz(ctx context.Context, profileID int64) (*models.HeartStatus, error) {
	log := logger.FromContext(ctx)

	profile, state, err := s.regenerate(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !gamification.CanStartQuiz(state.Hearts, profile.IsPremium) {
		log.Info("quiz start blocked, no hearts left: profile_id=%d", profileID)
		return nil, errors.NewConflictError("no hearts left")
	}
	return heartStatus(state), nil
}

func (s *progressService) ConsumeHeart(ctx context.Context, profileID int64) (*models.HeartStatus, error) {
	log := logger.FromContext(ctx)

	profile, state, err := s.regenerate(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.IsPremium {
		return heartStatus(state), nil
	}

	hearts := gamification.Consume(state.Hearts, 1, profile.IsPremium)
	anchor := state.LastRegen
	if state.Hearts == gamification.MaxHearts {
		// Regen countdown starts when the player drops below the cap.
		anchor = s.now()
	}
	if err := s.profiles.UpdateHearts(ctx, profileID, hearts, anchor); err != nil {
		log.Error("failed to persist heart consumption: %v", err)
		return nil, errors.NewInternalError(err)
	}
	next := gamification.Regenerate(hearts, anchor, s.now(), s.heartRefill, false)
	return heartStatus(next), nil
}

func (s *progressService) HeartStatus(ctx context.Context, profileID int64) (*models.HeartStatus, error) {
	_, state, err := s.regenerate(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return heartStatus(state), nil
}

// regenerate loads the profile, applies time-based heart refill and
// persists the new heart count when it changed.
func (s *progressService) regenerate(ctx context.Context, profileID int64) (*models.Profile, gamification.HeartState, error) {
	log := logger.FromContext(ctx)

	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		log.Error("failed to load profile %d: %v", profileID, err)
		return nil, gamification.HeartState{}, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, gamification.HeartState{}, errors.NewNotFoundError("profile", profileID)
	}

	state := gamification.Regenerate(profile.Hearts, profile.LastHeartRegen, s.now(), s.heartRefill, profile.IsPremium)
	if !profile.IsPremium && state.Hearts != profile.Hearts {
		if err := s.profiles.UpdateHearts(ctx, profileID, state.Hearts, state.LastRegen); err != nil {
			log.Error("failed to persist heart regeneration: %v", err)
			return nil, gamification.HeartState{}, errors.NewInternalError(err)
		}
	}
	return profile, state, nil
}

func heartStatus(state gamification.HeartState) *models.HeartStatus {
	return &models.HeartStatus{
		Hearts:      state.Hearts,
		MaxHearts:   gamification.MaxHearts,
		Unlimited:   state.Unlimited,
		NextHeartAt: state.NextHeartAt,
	}
}

func (s *progressService) RecordQuizCompletion(ctx context.Context, profileID int64, input QuizCompletionInput) (*models.CompletionResult, error) {
	if err := validateCompletion(input.Score, input.TotalQuestions, input.XPEarned); err != nil {
		return nil, err
	}
	if models.TopicIndex(input.Topic) < 0 {
		return nil, errors.NewValidationError("topic", "unknown topic")
	}
	return s.recordCompletion(ctx, profileID, completion{
		kind:           models.AttemptKindQuiz,
		topic:          input.Topic,
		score:          input.Score,
		totalQuestions: input.TotalQuestions,
		xpEarned:       input.XPEarned,
		topicProgress:  input.TopicProgress,
	})
}

func (s *progressService) RecordMockTestCompletion(ctx context.Context, profileID int64, input MockTestCompletionInput) (*models.CompletionResult, error) {
	if err := validateCompletion(input.Score, input.TotalQuestions, input.XPEarned); err != nil {
		return nil, err
	}
	return s.recordCompletion(ctx, profileID, completion{
		kind:           models.AttemptKindMockTest,
		score:          input.Score,
		totalQuestions: input.TotalQuestions,
		xpEarned:       input.XPEarned,
		passed:         input.Passed,
	})
}

func validateCompletion(score, totalQuestions, xpEarned int) error {
	if totalQuestions <= 0 {
		return errors.NewValidationError("total_questions", "must be positive")
	}
	if score < 0 || score > totalQuestions {
		return errors.NewValidationError("score", "must be between 0 and total_questions")
	}
	if xpEarned < 0 {
		return errors.NewValidationError("xp_earned", "must not be negative")
	}
	return nil
}

// completion is the normalized shape shared by quizzes and mock tests.
type completion struct {
	kind           string
	topic          string
	score          int
	totalQuestions int
	xpEarned       int
	topicProgress  int
	passed         bool
}

func (s *progressService) recordCompletion(ctx context.Context, profileID int64, c completion) (*models.CompletionResult, error) {
	log := logger.FromContext(ctx)

	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		log.Error("failed to load profile %d: %v", profileID, err)
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", profileID)
	}

	now := s.now()
	newStreak := gamification.NextStreak(profile.LastStreakUpdate, profile.DailyStreak, now)
	newTotalXP := profile.TotalXP + c.xpEarned
	newLevel := gamification.LevelForXP(newTotalXP)
	leveledUp := newLevel > profile.Level
	perfect := c.score == c.totalQuestions

	log.Info("recording %s completion: profile_id=%d, score=%d/%d, xp=%d, streak=%d->%d",
		c.kind, profileID, c.score, c.totalQuestions, c.xpEarned, profile.DailyStreak, newStreak)

	recorder := &effectRecorder{}
	topicCompleted := false

	g, gctx := errgroup.WithContext(ctx)

	// The profile write is the only hard failure; everything else is
	// best-effort and lands in the side-effect report.
	g.Go(func() error {
		if err := s.profiles.IncrementXP(gctx, profileID, c.xpEarned); err != nil {
			return err
		}
		return s.profiles.UpdateStreak(gctx, profileID, newStreak, now)
	})

	g.Go(func() error {
		_, err := s.attempts.Insert(gctx, models.QuizAttempt{
			ProfileID:      profileID,
			AttemptKey:     uuid.NewString(),
			Kind:           c.kind,
			Topic:          c.topic,
			Score:          c.score,
			TotalQuestions: c.totalQuestions,
			XPEarned:       c.xpEarned,
			CreatedAt:      now,
		})
		if err != nil {
			log.Error("failed to record attempt: %v", err)
			recorder.record(models.SideEffectAttempt, err)
		}
		return nil
	})

	g.Go(func() error {
		for _, event := range questEvents(c, perfect) {
			if err := s.quests.HandleEvent(gctx, profileID, event); err != nil {
				log.Error("failed to advance quests for event %s: %v", event.Type, err)
				recorder.record(models.SideEffectQuests, err)
			}
		}
		return nil
	})

	if c.kind == models.AttemptKindQuiz {
		g.Go(func() error {
			completed, err := s.topics.UpdateProgress(gctx, profileID, c.topic, c.topicProgress)
			if err != nil {
				log.Error("failed to update topic progress: %v", err)
				recorder.record(models.SideEffectTopic, err)
				return nil
			}
			topicCompleted = completed
			return nil
		})
	}

	g.Go(func() error {
		if err := s.league.AddWeeklyXP(gctx, profileID, c.xpEarned); err != nil {
			log.Error("failed to update league standing: %v", err)
			recorder.record(models.SideEffectLeague, err)
		}
		return nil
	})

	g.Go(func() error {
		if err := s.xpLog.Insert(gctx, models.XPLogEntry{
			ProfileID: profileID,
			Amount:    c.xpEarned,
			Source:    xpSource(c.kind),
			Detail:    c.topic,
			CreatedAt: now,
		}); err != nil {
			log.Error("failed to write xp log: %v", err)
			recorder.record(models.SideEffectXPLog, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("profile update failed, aborting completion: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// Achievements run after every counter they read has been written.
	meta := models.AchievementContext{
		Score:          c.score,
		TotalQuestions: c.totalQuestions,
		Streak:         newStreak,
		Level:          newLevel,
		Passed:         c.passed,
	}
	var unlocked []string
	categories := []string{models.AchievementCategoryQuiz, models.AchievementCategoryStreak}
	if c.kind == models.AttemptKindMockTest {
		categories = append(categories, models.AchievementCategoryMockTest)
	}
	if leveledUp {
		categories = append(categories, models.AchievementCategoryLevel)
	}
	if topicCompleted {
		categories = append(categories, models.AchievementCategoryTopicComplete)
	}
	for _, category := range categories {
		names, err := s.achievements.Evaluate(ctx, profileID, category, meta)
		if err != nil {
			log.Error("achievement evaluation failed for %s: %v", category, err)
			recorder.record(models.SideEffectAwards, err)
		}
		unlocked = append(unlocked, names...)
	}

	hearts := gamification.Regenerate(profile.Hearts, profile.LastHeartRegen, now, s.heartRefill, profile.IsPremium)
	result := &models.CompletionResult{
		NewStreak:            newStreak,
		NewTotalXP:           newTotalXP,
		NewLevel:             newLevel,
		Hearts:               hearts.Hearts,
		UnlimitedHearts:      hearts.Unlimited,
		UnlockedAchievements: unlocked,
		SideEffects:          recorder.report(),
	}
	if !result.SideEffects.Ok() {
		log.Warn("completion recorded with %d side-effect failures", len(result.SideEffects.Failures))
	}
	return result, nil
}

// questEvents fans one completion out to the quest event stream.
func questEvents(c completion, perfect bool) []models.QuestEvent {
	events := []models.QuestEvent{
		{Type: models.QuestTypeQuizCount, Increment: 1},
	}
	if perfect {
		events = append(events, models.QuestEvent{Type: models.QuestTypePerfectScore, Increment: 1})
	}
	if c.topic != "" {
		events = append(events, models.QuestEvent{Type: models.QuestTypeTopicQuiz, Increment: 1, Topic: c.topic})
	}
	if c.xpEarned > 0 {
		events = append(events, models.QuestEvent{Type: models.QuestTypeXPEarned, Increment: c.xpEarned})
	}
	return events
}

func xpSource(kind string) string {
	if kind == models.AttemptKindMockTest {
		return models.XPSourceMockTest
	}
	return models.XPSourceQuiz
}
