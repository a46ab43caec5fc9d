package routes

import (
	"github.com/Barbaracwx/telegram-sportsfinder/controllers"
	"github.com/Barbaracwx/telegram-sportsfinder/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up the message-relay endpoint
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	controller := controllers.NewChatController(chatService)

	r.HandleFunc("/api/chat/message", controller.RelayMessage).Methods("POST")
}
