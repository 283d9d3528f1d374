package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/arens/quizdeck/internal/models"
	"github.com/arens/quizdeck/internal/repository"
	"github.com/arens/quizdeck/internal/repository/sqlite"
	"github.com/arens/quizdeck/internal/testutil"
)

type ScoreRepositorySuite struct {
	suite.Suite
	db    *sql.DB
	repo  repository.ScoreRepository
	users repository.UserRepository
}

func (s *ScoreRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewScoreRepository(s.db)
	s.users = sqlite.NewUserRepository(s.db)
}

func (s *ScoreRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ScoreRepositorySuite) newUser(username string) int64 {
	id, err := s.users.Insert(context.Background(), username, "hash")
	s.Require().NoError(err)
	return id
}

func (s *ScoreRepositorySuite) submit(userID int64, subcategory string, score int) {
	_, err := s.repo.Insert(context.Background(), models.Score{
		UserID:         userID,
		CategoryID:     "gk",
		SubcategoryID:  subcategory,
		Difficulty:     "mixed",
		Score:          score,
		TotalQuestions: 10,
	})
	s.Require().NoError(err)
}

func (s *ScoreRepositorySuite) TestInsertAndListForUser() {
	ctx := context.Background()
	uid := s.newUser("ada")

	s.submit(uid, "gk-geography", 7)
	s.submit(uid, "gk-history", 9)

	scores, err := s.repo.ScoresForUser(ctx, uid)
	s.Require().NoError(err)
	s.Len(scores, 2)
	for _, sc := range scores {
		s.Equal(uid, sc.UserID)
		s.Equal(10, sc.TotalQuestions)
	}
}

func (s *ScoreRepositorySuite) TestLeaderboardOrdering() {
	ctx := context.Background()
	ada := s.newUser("ada")
	grace := s.newUser("grace")
	alan := s.newUser("alan")

	s.submit(ada, "gk-geography", 6)
	s.submit(grace, "gk-geography", 9)
	s.submit(alan, "gk-geography", 3)

	entries, err := s.repo.Leaderboard(ctx, models.ScoreFilter{SubcategoryID: "gk-geography"})
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("grace", entries[0].Username)
	s.Equal("ada", entries[1].Username)
	s.Equal("alan", entries[2].Username)
}

func (s *ScoreRepositorySuite) TestLeaderboardFilters() {
	ctx := context.Background()
	ada := s.newUser("ada")

	s.submit(ada, "gk-geography", 8)
	s.submit(ada, "gk-history", 5)

	entries, err := s.repo.Leaderboard(ctx, models.ScoreFilter{SubcategoryID: "gk-history"})
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(5, entries[0].Score)

	// No filter returns everything
	entries, err = s.repo.Leaderboard(ctx, models.ScoreFilter{})
	s.Require().NoError(err)
	s.Len(entries, 2)
}

func (s *ScoreRepositorySuite) TestLeaderboardLimit() {
	ctx := context.Background()
	ada := s.newUser("ada")

	for i := 0; i < 5; i++ {
		s.submit(ada, "gk-geography", i)
	}

	entries, err := s.repo.Leaderboard(ctx, models.ScoreFilter{Limit: 3})
	s.Require().NoError(err)
	s.Len(entries, 3)
	s.Equal(4, entries[0].Score)
}

func TestScoreRepositorySuite(t *testing.T) {
	suite.Run(t, new(ScoreRepositorySuite))
}
