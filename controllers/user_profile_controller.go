package controllers

import (
	"errors"
	"net/http"

	"github.com/Barbaracwx/telegram-sportsfinder/models"
	"github.com/Barbaracwx/telegram-sportsfinder/services"

	"github.com/gorilla/mux"
)

// UserProfileController backs the profile-editing webapp.
type UserProfileController struct {
	UserProfileService *services.UserProfileService
}

// NewUserProfileController creates a new UserProfileController instance
func NewUserProfileController(userProfileService *services.UserProfileService) *UserProfileController {
	return &UserProfileController{UserProfileService: userProfileService}
}

// CreateUserProfile handles profile creation
func (upc *UserProfileController) CreateUserProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.User
	if !decodeBody(w, r, &profile) {
		return
	}
	if profile.TelegramID == "" {
		http.Error(w, "telegramId is required", http.StatusBadRequest)
		return
	}

	created, err := upc.UserProfileService.AddUserProfile(r.Context(), profile)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// GetUserProfile handles fetching a profile by Telegram id
func (upc *UserProfileController) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := upc.UserProfileService.GetUserProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// UpdateUserProfile handles partial profile updates
func (upc *UserProfileController) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var updates map[string]interface{}
	if !decodeBody(w, r, &updates) {
		return
	}
	if len(updates) == 0 {
		http.Error(w, "no fields to update", http.StatusBadRequest)
		return
	}

	profile, err := upc.UserProfileService.UpdateUserProfile(r.Context(), userID, updates)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
