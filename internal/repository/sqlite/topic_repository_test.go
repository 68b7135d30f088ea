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

type TopicRepositorySuite struct {
	suite.Suite
	db        *sql.DB
	repo      repository.TopicRepository
	profileID int64
}

func (s *TopicRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewTopicRepository(s.db)

	profiles := sqlite.NewProfileRepository(s.db)
	p, err := profiles.Create(context.Background(), "ned")
	s.Require().NoError(err)
	s.profileID = p.ID
}

func (s *TopicRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *TopicRepositorySuite) TestUpsertInsertsThenUpdates() {
	ctx := context.Background()
	topic := "Australia and its people"

	err := s.repo.Upsert(ctx, models.TopicProgress{
		ProfileID: s.profileID, Topic: topic, ProgressPercentage: 40, Status: models.TopicStatusInProgress,
	})
	s.Require().NoError(err)

	err = s.repo.Upsert(ctx, models.TopicProgress{
		ProfileID: s.profileID, Topic: topic, ProgressPercentage: 70, Status: models.TopicStatusInProgress,
	})
	s.Require().NoError(err)

	tp, err := s.repo.Get(ctx, s.profileID, topic)
	s.Require().NoError(err)
	s.Require().NotNil(tp)
	s.Assert().Equal(70, tp.ProgressPercentage)
	s.Assert().Equal(models.TopicStatusInProgress, tp.Status)
}

func (s *TopicRepositorySuite) TestUpsertKeepsHighestPercentage() {
	ctx := context.Background()
	topic := "Democratic beliefs"

	s.Require().NoError(s.repo.Upsert(ctx, models.TopicProgress{
		ProfileID: s.profileID, Topic: topic, ProgressPercentage: 80, Status: models.TopicStatusInProgress,
	}))
	s.Require().NoError(s.repo.Upsert(ctx, models.TopicProgress{
		ProfileID: s.profileID, Topic: topic, ProgressPercentage: 30, Status: models.TopicStatusInProgress,
	}))

	tp, err := s.repo.Get(ctx, s.profileID, topic)
	s.Require().NoError(err)
	s.Require().NotNil(tp)
	s.Assert().Equal(80, tp.ProgressPercentage)
}

func (s *TopicRepositorySuite) TestCompletedIsTerminal() {
	ctx := context.Background()
	topic := "Government and the law"

	s.Require().NoError(s.repo.Upsert(ctx, models.TopicProgress{
		ProfileID: s.profileID, Topic: topic, ProgressPercentage: 100, Status: models.TopicStatusCompleted,
	}))
	s.Require().NoError(s.repo.Upsert(ctx, models.TopicProgress{
		ProfileID: s.profileID, Topic: topic, ProgressPercentage: 55, Status: models.TopicStatusInProgress,
	}))

	tp, err := s.repo.Get(ctx, s.profileID, topic)
	s.Require().NoError(err)
	s.Require().NotNil(tp)
	s.Assert().Equal(100, tp.ProgressPercentage)
	s.Assert().Equal(models.TopicStatusCompleted, tp.Status)
}

func (s *TopicRepositorySuite) TestGetMissingReturnsNil() {
	tp, err := s.repo.Get(context.Background(), s.profileID, "Australian values")
	s.Require().NoError(err)
	s.Assert().Nil(tp)
}

func (s *TopicRepositorySuite) TestListForProfile() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Upsert(ctx, models.TopicProgress{
		ProfileID: s.profileID, Topic: "Australia and its people", ProgressPercentage: 100, Status: models.TopicStatusCompleted,
	}))
	s.Require().NoError(s.repo.Upsert(ctx, models.TopicProgress{
		ProfileID: s.profileID, Topic: "Democratic beliefs", ProgressPercentage: 10, Status: models.TopicStatusInProgress,
	}))

	list, err := s.repo.ListForProfile(ctx, s.profileID)
	s.Require().NoError(err)
	s.Assert().Len(list, 2)
}

func TestTopicRepositorySuite(t *testing.T) {
	suite.Run(t, new(TopicRepositorySuite))
}
