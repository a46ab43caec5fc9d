package controllers

import (
	"errors"
	"net/http"

	"github.com/Barbaracwx/telegram-sportsfinder/services"
)

// ChatController relays plain text between matched players.
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController creates a new ChatController instance
func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// RelayMessage forwards a message from one matched player to the other.
// Unmatched senders are answered quietly; the bot simply has nowhere
// to forward the text.
func (cc *ChatController) RelayMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
		Text   string `json:"text"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" || req.Text == "" {
		http.Error(w, "userId and text are required", http.StatusBadRequest)
		return
	}

	if err := cc.ChatService.RelayMessage(r.Context(), req.UserID, req.Text); err != nil {
		if errors.Is(err, services.ErrNoActiveMatch) || errors.Is(err, services.ErrProfileNotFound) {
			respondJSON(w, http.StatusOK, intentResponse{Ok: true, Status: "ignored"})
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, intentResponse{Ok: true, Status: "delivered"})
}
