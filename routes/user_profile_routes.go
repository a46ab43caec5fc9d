package routes

import (
	"github.com/Barbaracwx/telegram-sportsfinder/controllers"
	"github.com/Barbaracwx/telegram-sportsfinder/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for user profile operations
// under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, userProfileService *services.UserProfileService) {
	controller := controllers.NewUserProfileController(userProfileService)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.HandleFunc("", controller.CreateUserProfile).Methods("POST")
	profileRouter.HandleFunc("/{userId}", controller.GetUserProfile).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.UpdateUserProfile).Methods("PATCH")
}
