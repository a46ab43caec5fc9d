package controllers

import (
	"net/http"

	"github.com/Barbaracwx/telegram-sportsfinder/services"
	"github.com/Barbaracwx/telegram-sportsfinder/utils"
)

// CallbackController dispatches choice tokens echoed back by the bot
// gateway: sport selections resume the match search, feedback tokens
// advance the responder's feedback sub-flow.
type CallbackController struct {
	MatchService     *services.MatchService
	LifecycleService *services.LifecycleService
}

// NewCallbackController creates a new CallbackController instance
func NewCallbackController(matchService *services.MatchService, lifecycleService *services.LifecycleService) *CallbackController {
	return &CallbackController{MatchService: matchService, LifecycleService: lifecycleService}
}

// HandleCallback handles a pressed choice button
func (cc *CallbackController) HandleCallback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
		Token  string `json:"token"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" || req.Token == "" {
		http.Error(w, "userId and token are required", http.StatusBadRequest)
		return
	}

	token, ok := utils.ParseCallbackToken(req.Token)
	if !ok {
		respondError(w, services.ErrMalformedCallbackToken)
		return
	}

	switch token.Kind {
	case "sport":
		match, err := cc.MatchService.FindMatch(r.Context(), req.UserID, token.Sport)
		if err != nil {
			respondError(w, err)
			return
		}
		if match == nil {
			respondJSON(w, http.StatusOK, intentResponse{Ok: true, Status: "waiting"})
			return
		}
		respondJSON(w, http.StatusOK, intentResponse{Ok: true, Status: "matched", MatchID: match.MatchID})

	case "feedback":
		if err := cc.LifecycleService.FeedbackAnswered(r.Context(), req.UserID, token.Step, token.MatchID, token.Value); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, intentResponse{Ok: true, Status: "recorded"})

	default:
		respondError(w, services.ErrMalformedCallbackToken)
	}
}
