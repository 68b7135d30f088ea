package api

import (
	"net/http"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	snapshot, err := s.Dashboard.GetDashboard(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, snapshot)
}

func (s *Server) handleSkillTree(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	tree, err := s.Dashboard.GetSkillTree(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, tree)
}

func (s *Server) handleLeague(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	standing, err := s.League.Standing(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, standing)
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	unlocked, err := s.Achievements.Unlocked(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"achievements": unlocked})
}

// handleQuests returns today's quests, assigning them first if this is
// the profile's first fetch of the day.
func (s *Server) handleQuests(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	quests, err := s.Quests.ActiveQuests(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"quests": quests})
}
