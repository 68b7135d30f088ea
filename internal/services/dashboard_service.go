package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/models"
)

// DashboardService aggregates the read models for the home screen
type DashboardService interface {
	GetDashboard(ctx context.Context, profileID int64) (*models.DashboardSnapshot, error)
	GetSkillTree(ctx context.Context, profileID int64) (*models.SkillTreeSnapshot, error)
}

type dashboardService struct {
	profiles ProfileService
	progress ProgressService
	quests   QuestService
	topics   TopicService
	league   LeagueService
	activity ActivityReader
	recent   int
}

// ActivityReader exposes the recent XP grants for the activity feed.
type ActivityReader interface {
	RecentActivity(ctx context.Context, profileID int64, limit int) ([]models.XPLogEntry, error)
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	profiles ProfileService,
	progress ProgressService,
	quests QuestService,
	topics TopicService,
	league LeagueService,
	activity ActivityReader,
	recent int,
) DashboardService {
	if recent <= 0 {
		recent = 10
	}
	return &dashboardService{
		profiles: profiles,
		progress: progress,
		quests:   quests,
		topics:   topics,
		league:   league,
		activity: activity,
		recent:   recent,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, profileID int64) (*models.DashboardSnapshot, error) {
	log := logger.FromContext(ctx)
	log.Debug("building dashboard: profile_id=%d", profileID)

	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	snapshot := &models.DashboardSnapshot{Profile: profile}

	// Independent reads, fetched in parallel. Each one is required: a
	// dashboard with silently missing sections is worse than an error.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hearts, err := s.progress.HeartStatus(gctx, profileID)
		if err != nil {
			return err
		}
		snapshot.Hearts = *hearts
		return nil
	})
	g.Go(func() error {
		quests, err := s.quests.ActiveQuests(gctx, profileID)
		if err != nil {
			return err
		}
		snapshot.ActiveQuests = quests
		return nil
	})
	g.Go(func() error {
		league, err := s.league.Standing(gctx, profileID)
		if err != nil {
			return err
		}
		snapshot.League = league
		return nil
	})
	g.Go(func() error {
		activity, err := s.activity.RecentActivity(gctx, profileID, s.recent)
		if err != nil {
			return err
		}
		snapshot.RecentActivity = activity
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to build dashboard: %v", err)
		return nil, err
	}
	return snapshot, nil
}

func (s *dashboardService) GetSkillTree(ctx context.Context, profileID int64) (*models.SkillTreeSnapshot, error) {
	if _, err := s.profiles.GetProfile(ctx, profileID); err != nil {
		return nil, err
	}
	return s.topics.SkillTree(ctx, profileID)
}
