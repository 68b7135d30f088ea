package api

import (
	"database/sql"

	"github.com/go-playground/validator/v10"

	"github.com/tallara/ozquiz/internal/jobs"
	"github.com/tallara/ozquiz/internal/services"
)

// Server holds the handler dependencies. All state lives in the services;
// handlers only translate HTTP to service calls.
type Server struct {
	DB           *sql.DB
	Profiles     services.ProfileService
	Progress     services.ProgressService
	Quests       services.QuestService
	Achievements services.AchievementService
	League       services.LeagueService
	Social       services.SocialService
	Dashboard    services.DashboardService
	Queue        jobs.JobQueue

	validate *validator.Validate
}

// NewServer creates a new Server
func NewServer(
	db *sql.DB,
	profiles services.ProfileService,
	progress services.ProgressService,
	quests services.QuestService,
	achievements services.AchievementService,
	league services.LeagueService,
	social services.SocialService,
	dashboard services.DashboardService,
	queue jobs.JobQueue,
) *Server {
	return &Server{
		DB:           db,
		Profiles:     profiles,
		Progress:     progress,
		Quests:       quests,
		Achievements: achievements,
		League:       league,
		Social:       social,
		Dashboard:    dashboard,
		Queue:        queue,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
}
