package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/repository"
	"github.com/tallara/ozquiz/internal/repository/sqlite"
	"github.com/tallara/ozquiz/internal/testutil"
)

type AchievementRepositorySuite struct {
	suite.Suite
	db        *sql.DB
	repo      repository.AchievementRepository
	profileID int64
}

func (s *AchievementRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewAchievementRepository(s.db)

	profiles := sqlite.NewProfileRepository(s.db)
	p, err := profiles.Create(context.Background(), "matilda")
	s.Require().NoError(err)
	s.profileID = p.ID

	err = s.repo.InsertDefinitions(context.Background(), []models.Achievement{
		{Name: "First Step", Description: "Complete your first quiz", XPReward: 25},
		{Name: "On Fire", Description: "Reach a 3 day streak", XPReward: 50},
	})
	s.Require().NoError(err)
}

func (s *AchievementRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *AchievementRepositorySuite) TestGetByName() {
	a, err := s.repo.GetByName(context.Background(), "First Step")
	s.Require().NoError(err)
	s.Require().NotNil(a)
	s.Assert().Equal(25, a.XPReward)

	missing, err := s.repo.GetByName(context.Background(), "Drop Bear Dodger")
	s.Require().NoError(err)
	s.Assert().Nil(missing)
}

func (s *AchievementRepositorySuite) TestUnlockIsIdempotent() {
	ctx := context.Background()
	a, err := s.repo.GetByName(ctx, "First Step")
	s.Require().NoError(err)
	s.Require().NotNil(a)

	has, err := s.repo.HasUnlock(ctx, s.profileID, a.ID)
	s.Require().NoError(err)
	s.Assert().False(has)

	s.Require().NoError(s.repo.InsertUnlock(ctx, s.profileID, a.ID))
	s.Require().NoError(s.repo.InsertUnlock(ctx, s.profileID, a.ID))

	has, err = s.repo.HasUnlock(ctx, s.profileID, a.ID)
	s.Require().NoError(err)
	s.Assert().True(has)

	unlocked, err := s.repo.ListUnlocked(ctx, s.profileID)
	s.Require().NoError(err)
	s.Require().Len(unlocked, 1)
	s.Assert().Equal("First Step", unlocked[0].Name)
}

func (s *AchievementRepositorySuite) TestCountDefinitions() {
	count, err := s.repo.CountDefinitions(context.Background())
	s.Require().NoError(err)
	s.Assert().Equal(2, count)
}

func TestAchievementRepositorySuite(t *testing.T) {
	suite.Run(t, new(AchievementRepositorySuite))
}
