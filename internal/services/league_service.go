package services

import (
	"context"
	"sort"

	"github.com/tallara/ozquiz/internal/errors"
	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/repository"
)

// syntheticPeers pads the weekly ladder so a standing is meaningful even
// with few real users. Weekly XP values are fixed per week.
var syntheticPeers = []models.LeaguePlayer{
	{Username: "MateshipMax", WeeklyXP: 450, IsSynthetic: true},
	{Username: "BondiBrooke", WeeklyXP: 320, IsSynthetic: true},
	{Username: "KoalaKev", WeeklyXP: 280, IsSynthetic: true},
	{Username: "OutbackOllie", WeeklyXP: 150, IsSynthetic: true},
	{Username: "WattleWren", WeeklyXP: 90, IsSynthetic: true},
}

// LeagueService maintains weekly league standings
type LeagueService interface {
	// AddWeeklyXP credits xp to the profile's weekly total, placing the
	// profile into the bronze league on first contact.
	AddWeeklyXP(ctx context.Context, profileID int64, xp int) error
	Standing(ctx context.Context, profileID int64) (*models.LeagueSnapshot, error)
}

type leagueService struct {
	league  repository.LeagueRepository
	topSize int
}

// NewLeagueService creates a new LeagueService
func NewLeagueService(league repository.LeagueRepository, topSize int) LeagueService {
	if topSize <= 0 {
		topSize = 10
	}
	return &leagueService{league: league, topSize: topSize}
}

func (s *leagueService) AddWeeklyXP(ctx context.Context, profileID int64, xp int) error {
	log := logger.FromContext(ctx)

	if xp <= 0 {
		return nil
	}

	updated, err := s.league.AddWeeklyXP(ctx, profileID, xp)
	if err != nil {
		log.Error("failed to add weekly xp: %v", err)
		return errors.NewInternalError(err)
	}
	if updated {
		return nil
	}

	// No standing yet, enrol in bronze with the earned xp.
	if err := s.league.Insert(ctx, models.LeagueStanding{
		ProfileID: profileID,
		LeagueID:  models.LeagueBronze,
		WeeklyXP:  xp,
	}); err != nil {
		log.Error("failed to create league standing: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("profile enrolled in league: profile_id=%d, league=%s", profileID, models.LeagueBronze)
	return nil
}

func (s *leagueService) Standing(ctx context.Context, profileID int64) (*models.LeagueSnapshot, error) {
	log := logger.FromContext(ctx)

	standing, err := s.league.Get(ctx, profileID)
	if err != nil {
		log.Error("failed to load league standing: %v", err)
		return nil, errors.NewInternalError(err)
	}

	snapshot := &models.LeagueSnapshot{LeagueID: models.LeagueBronze}
	weeklyXP := 0
	if standing != nil {
		snapshot.LeagueID = standing.LeagueID
		weeklyXP = standing.WeeklyXP
	}
	snapshot.WeeklyXP = weeklyXP

	realAbove, err := s.league.CountPeersAbove(ctx, snapshot.LeagueID, weeklyXP, profileID)
	if err != nil {
		log.Error("failed to count league peers: %v", err)
		return nil, errors.NewInternalError(err)
	}
	syntheticAbove := 0
	for _, p := range syntheticPeers {
		if p.WeeklyXP > weeklyXP {
			syntheticAbove++
		}
	}
	snapshot.Rank = 1 + realAbove + syntheticAbove

	real, err := s.league.TopPlayers(ctx, snapshot.LeagueID, s.topSize)
	if err != nil {
		log.Error("failed to load league leaderboard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	merged := make([]models.LeaguePlayer, 0, len(real)+len(syntheticPeers))
	merged = append(merged, real...)
	merged = append(merged, syntheticPeers...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].WeeklyXP > merged[j].WeeklyXP
	})
	if len(merged) > s.topSize {
		merged = merged[:s.topSize]
	}
	snapshot.TopPlayers = merged

	return snapshot, nil
}
