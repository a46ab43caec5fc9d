package routes

import (
	"github.com/Barbaracwx/telegram-sportsfinder/controllers"
	"github.com/Barbaracwx/telegram-sportsfinder/services"

	"github.com/gorilla/mux"
)

// RegisterCallbackRoutes sets up the choice-token dispatch endpoint
func RegisterCallbackRoutes(r *mux.Router, matchService *services.MatchService, lifecycleService *services.LifecycleService) {
	controller := controllers.NewCallbackController(matchService, lifecycleService)

	r.HandleFunc("/api/callback", controller.HandleCallback).Methods("POST")
}
