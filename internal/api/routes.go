package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(s.profileMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/profiles", s.handleCreateProfile)
		r.Get("/profiles", s.handleListProfiles)
		r.Get("/profile", s.handleGetProfile)

		r.Get("/dashboard", s.handleDashboard)
		r.Get("/skill-tree", s.handleSkillTree)
		r.Get("/league", s.handleLeague)
		r.Get("/achievements", s.handleAchievements)
		r.Get("/quests", s.handleQuests)

		r.Get("/hearts", s.handleHearts)
		r.Post("/quiz/start", s.handleStartQuiz)
		r.Post("/quiz/hearts/consume", s.handleConsumeHeart)
		r.Post("/quiz/complete", s.handleCompleteQuiz)
		r.Post("/mock-test/complete", s.handleCompleteMockTest)

		r.Post("/friends/accept", s.handleAcceptFriend)
		r.Post("/battles/result", s.handleBattleResult)
	})

	return r
}
