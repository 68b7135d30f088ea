package api

import (
	"net/http"

	"github.com/tallara/ozquiz/internal/logger"
)

type createProfileRequest struct {
	Username string `json:"username" validate:"required,min=1,max=32"`
}

// handleCreateProfile creates or selects a profile by username and sets
// the profile cookie.
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req createProfileRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.Profiles.GetOrCreate(r.Context(), req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("profile selected: id=%d", profile.ID)
	setProfileCookie(w, profile.ID)
	respondJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, profileFromContext(r.Context()))
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.Profiles.ListProfiles(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"profiles": profiles})
}
