package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Barbaracwx/telegram-sportsfinder/services"
)

// Every intent answers with this envelope. Message carries the
// plain-language text the gateway relays to the user when Ok is false.
type intentResponse struct {
	Ok      bool   `json:"ok"`
	Status  string `json:"status,omitempty"`
	MatchID string `json:"matchId,omitempty"`
	Message string `json:"message,omitempty"`
}

// userMessages maps the error taxonomy to the replies users see. None
// of these mutate state; they are terminal answers to one intent.
var userMessages = map[error]string{
	services.ErrProfileNotFound:        "Please complete your profile first!",
	services.ErrProfileIncomplete:      "Please complete your profile first!",
	services.ErrPreferencesIncomplete:  "Please complete your match preferences first!",
	services.ErrAlreadyMatched:         "You are already matched with someone!",
	services.ErrNoSportsRegistered:     "You have not selected any sports in your profile!",
	services.ErrNoActiveMatch:          "You are not currently matched with anyone!",
	services.ErrMatchNotFound:          "No active match found!",
	services.ErrNotAParticipant:        "You are not part of this match!",
	services.ErrMalformedCallbackToken: "Sorry, that response could not be understood.",
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondError is the handling boundary for one inbound event: known
// taxonomy errors become user-facing replies, anything else is logged
// and answered with a generic retry-later message. No failure here is
// allowed to take the process down.
func respondError(w http.ResponseWriter, err error) {
	for sentinel, message := range userMessages {
		if errors.Is(err, sentinel) {
			respondJSON(w, http.StatusOK, intentResponse{Ok: false, Message: message})
			return
		}
	}

	log.Printf("unexpected error handling intent: %v", err)
	respondJSON(w, http.StatusInternalServerError, intentResponse{
		Ok:      false,
		Message: "Something went wrong. Please try again later!",
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
