package controllers

import (
	"net/http"

	"github.com/Barbaracwx/telegram-sportsfinder/services"
)

// LifecycleController handles the match-termination intent.
type LifecycleController struct {
	LifecycleService *services.LifecycleService
}

// NewLifecycleController creates a new LifecycleController instance
func NewLifecycleController(lifecycleService *services.LifecycleService) *LifecycleController {
	return &LifecycleController{LifecycleService: lifecycleService}
}

// EndMatch handles the "end my match" intent
func (lc *LifecycleController) EndMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	match, err := lc.LifecycleService.EndMatch(r.Context(), req.UserID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, intentResponse{Ok: true, Status: "ended", MatchID: match.MatchID})
}

// FeedbackAnswered handles a structured feedback answer. The gateway's
// inline buttons reach the same logic via /api/callback.
func (lc *LifecycleController) FeedbackAnswered(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"userId"`
		StepKind string `json:"stepKind"`
		MatchID  string `json:"matchId"`
		Value    string `json:"value"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" || req.StepKind == "" || req.MatchID == "" || req.Value == "" {
		http.Error(w, "userId, stepKind, matchId and value are required", http.StatusBadRequest)
		return
	}

	if err := lc.LifecycleService.FeedbackAnswered(r.Context(), req.UserID, req.StepKind, req.MatchID, req.Value); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, intentResponse{Ok: true, Status: "recorded"})
}
