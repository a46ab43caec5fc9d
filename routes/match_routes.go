package routes

import (
	"github.com/Barbaracwx/telegram-sportsfinder/controllers"
	"github.com/Barbaracwx/telegram-sportsfinder/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up the match-search and lifecycle intents
// under /api/match
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService, lifecycleService *services.LifecycleService) {
	matchController := controllers.NewMatchController(matchService)
	lifecycleController := controllers.NewLifecycleController(lifecycleService)

	matchRouter := r.PathPrefix("/api/match").Subrouter()
	matchRouter.HandleFunc("/request", matchController.RequestMatch).Methods("POST")
	matchRouter.HandleFunc("/sport", matchController.SportChosen).Methods("POST")
	matchRouter.HandleFunc("/end", lifecycleController.EndMatch).Methods("POST")

	r.HandleFunc("/api/feedback", lifecycleController.FeedbackAnswered).Methods("POST")
}
