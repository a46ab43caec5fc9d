package services

import (
	"context"
	"time"

	"github.com/Barbaracwx/telegram-sportsfinder/models"
)

// UserProfileService backs the profile-editing webapp. Matching-state
// flags are owned by the matching engine and lifecycle controller;
// this service only manages the descriptive attributes.
type UserProfileService struct {
	Profiles ProfileStore
}

// AddUserProfile stores a new user profile. The creation timestamp is
// the candidate-ordering key for the matching scan.
func (ups *UserProfileService) AddUserProfile(ctx context.Context, profile models.User) (*models.User, error) {
	if profile.CreatedAt == "" {
		profile.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	profile.WantToBeMatched = false
	profile.IsMatched = false

	if err := ups.Profiles.CreateUser(ctx, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetUserProfile retrieves a user profile by Telegram id
func (ups *UserProfileService) GetUserProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := ups.Profiles.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}
	return user, nil
}

// UpdateUserProfile updates descriptive attributes on an existing profile
func (ups *UserProfileService) UpdateUserProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.User, error) {
	// Matching flags are not editable through the profile surface.
	delete(updates, "isMatched")
	delete(updates, "wantToBeMatched")
	delete(updates, "selectedSport")

	if err := ups.Profiles.UpdateUser(ctx, userID, updates); err != nil {
		return nil, err
	}
	return ups.GetUserProfile(ctx, userID)
}
