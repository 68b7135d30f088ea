package api

import (
	"net/http"
)

type battleResultRequest struct {
	Won bool `json:"won"`
}

func (s *Server) handleAcceptFriend(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	unlocked, err := s.Social.AcceptFriend(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"unlocked_achievements": unlocked})
}

func (s *Server) handleBattleResult(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req battleResultRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	unlocked, err := s.Social.RecordBattleResult(r.Context(), profile.ID, req.Won)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"unlocked_achievements": unlocked})
}
