package api

import (
	"net/http"

	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/services"
)

type quizCompleteRequest struct {
	Topic          string `json:"topic" validate:"required"`
	Score          int    `json:"score" validate:"min=0"`
	TotalQuestions int    `json:"total_questions" validate:"required,min=1"`
	XPEarned       int    `json:"xp_earned" validate:"min=0"`
	TopicProgress  int    `json:"topic_progress" validate:"min=0,max=100"`
}

type mockTestCompleteRequest struct {
	Score          int  `json:"score" validate:"min=0"`
	TotalQuestions int  `json:"total_questions" validate:"required,min=1"`
	XPEarned       int  `json:"xp_earned" validate:"min=0"`
	Passed         bool `json:"passed"`
}

// handleStartQuiz gates quiz entry on the heart balance.
func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	hearts, err := s.Progress.StartQuiz(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, hearts)
}

func (s *Server) handleHearts(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	hearts, err := s.Progress.HeartStatus(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, hearts)
}

func (s *Server) handleConsumeHeart(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	hearts, err := s.Progress.ConsumeHeart(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, hearts)
}

func (s *Server) handleCompleteQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	profile := profileFromContext(r.Context())

	var req quizCompleteRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.Progress.RecordQuizCompletion(r.Context(), profile.ID, services.QuizCompletionInput{
		Topic:          req.Topic,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		XPEarned:       req.XPEarned,
		TopicProgress:  req.TopicProgress,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("quiz completion recorded: profile_id=%d, unlocked=%d", profile.ID, len(result.UnlockedAchievements))
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleCompleteMockTest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	profile := profileFromContext(r.Context())

	var req mockTestCompleteRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.Progress.RecordMockTestCompletion(r.Context(), profile.ID, services.MockTestCompletionInput{
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		XPEarned:       req.XPEarned,
		Passed:         req.Passed,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("mock test completion recorded: profile_id=%d", profile.ID)
	respondJSON(w, r, http.StatusOK, result)
}
