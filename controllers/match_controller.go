package controllers

import (
	"net/http"

	"github.com/Barbaracwx/telegram-sportsfinder/services"
)

// MatchController handles the match-search intents coming from the bot
// gateway.
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// RequestMatch handles the "find me a match" intent: it validates the
// seeker and prompts them to pick a sport.
func (mc *MatchController) RequestMatch(w http.ResponseWriter, r *http.Request) {
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

	if err := mc.MatchService.RequestMatch(r.Context(), req.UserID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, intentResponse{Ok: true, Status: "sport-selection"})
}

// SportChosen handles an explicit sport pick and runs the search. The
// gateway's inline buttons reach the same logic via /api/callback.
func (mc *MatchController) SportChosen(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
		Sport  string `json:"sport"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" || req.Sport == "" {
		http.Error(w, "userId and sport are required", http.StatusBadRequest)
		return
	}

	match, err := mc.MatchService.FindMatch(r.Context(), req.UserID, req.Sport)
	if err != nil {
		respondError(w, err)
		return
	}
	if match == nil {
		respondJSON(w, http.StatusOK, intentResponse{Ok: true, Status: "waiting"})
		return
	}
	respondJSON(w, http.StatusOK, intentResponse{Ok: true, Status: "matched", MatchID: match.MatchID})
}
