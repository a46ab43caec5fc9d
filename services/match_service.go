package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/Barbaracwx/telegram-sportsfinder/models"
	"github.com/Barbaracwx/telegram-sportsfinder/utils"

	"github.com/google/uuid"
)

// MatchService is the matching engine: it validates a seeker, makes
// them discoverable, walks waiting candidates first-fit, and commits
// the first mutually compatible pairing.
type MatchService struct {
	Profiles ProfileStore
	Matches  MatchStore
	Notifier Notifier

	// Trace, when set, receives one call per candidate considered
	// during a scan. Used for matching diagnostics; nil disables it.
	Trace func(seekerID, candidateID, sport string, compatible bool)
}

// RequestMatch validates the seeker and prompts them to pick which of
// their registered sports to search for.
func (ms *MatchService) RequestMatch(ctx context.Context, userID string) error {
	user, err := ms.checkSeeker(ctx, userID)
	if err != nil {
		return err
	}

	sports := make([]string, 0, len(user.Sports))
	for sport := range user.Sports {
		sports = append(sports, sport)
	}
	sort.Strings(sports)

	choices := make([]models.Choice, 0, len(sports))
	for _, sport := range sports {
		choices = append(choices, models.Choice{Label: sport, Token: utils.SportToken(sport)})
	}

	return ms.Notifier.Notify(ctx, userID,
		"Ready for your next game? Which sport are you looking to find a player for:", choices)
}

// FindMatch makes the seeker discoverable for the sport and scans the
// waiting pool for the first mutually compatible candidate. A nil
// match with a nil error means no candidate fit and the seeker keeps
// waiting.
func (ms *MatchService) FindMatch(ctx context.Context, userID, sport string) (*models.Match, error) {
	user, err := ms.checkSeeker(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, ok := user.Sports[sport]; !ok {
		return nil, ErrNoSportsRegistered
	}

	if err := ms.Notifier.Notify(ctx, userID,
		fmt.Sprintf("Gotcha! Sportsfinding your player in %s...", sport), nil); err != nil {
		return nil, err
	}

	// Persist the waiting flags first so concurrent searches can see
	// this seeker as a candidate. The write is conditional on the
	// seeker still being unmatched, so a pairing committed since
	// checkSeeker surfaces here instead of leaving the seeker both
	// matched and waiting.
	if err := ms.Profiles.MarkWaiting(ctx, userID, sport); err != nil {
		return nil, err
	}

	candidates, err := ms.Profiles.ListWaitingBySport(ctx, sport, userID)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		candidate := &candidates[i]
		compatible := MutuallyCompatible(user, candidate, sport)
		if ms.Trace != nil {
			ms.Trace(userID, candidate.TelegramID, sport, compatible)
		}
		if !compatible {
			continue
		}

		match, err := ms.commit(ctx, user, candidate, sport)
		if errors.Is(err, ErrNotWaiting) {
			// The candidate was taken between the scan and the claim;
			// keep walking.
			continue
		}
		if err != nil {
			return nil, err
		}
		return match, nil
	}

	if err := ms.Notifier.Notify(ctx, userID,
		fmt.Sprintf("No match found for %s at the moment. Please wait for a match!", sport), nil); err != nil {
		return nil, err
	}
	return nil, nil
}

// commit atomically pairs the seeker with a candidate: both users are
// flipped from waiting to matched via conditional updates, and only
// then is the match record inserted. Losing the candidate claim
// surfaces as ErrNotWaiting; losing the seeker claim means another
// caller matched the seeker first.
func (ms *MatchService) commit(ctx context.Context, seeker, candidate *models.User, sport string) (*models.Match, error) {
	if err := ms.Profiles.ClaimForMatch(ctx, candidate.TelegramID); err != nil {
		return nil, err
	}

	if err := ms.Profiles.ClaimForMatch(ctx, seeker.TelegramID); err != nil {
		// Give the candidate back before reporting.
		if releaseErr := ms.Profiles.ReleaseClaim(ctx, candidate.TelegramID); releaseErr != nil {
			log.Printf("failed to release claim on %s: %v", candidate.TelegramID, releaseErr)
		}
		if errors.Is(err, ErrNotWaiting) {
			return nil, ErrAlreadyMatched
		}
		return nil, err
	}

	match := models.Match{
		MatchID:       uuid.NewString(),
		UserAID:       seeker.TelegramID,
		UserBID:       candidate.TelegramID,
		UserAUsername: seeker.Username,
		UserBUsername: candidate.Username,
		Sport:         sport,
		Status:        models.MatchStatusActive,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := ms.Matches.InsertMatch(ctx, match); err != nil {
		if releaseErr := ms.Profiles.ReleaseClaim(ctx, seeker.TelegramID); releaseErr != nil {
			log.Printf("failed to release claim on %s: %v", seeker.TelegramID, releaseErr)
		}
		if releaseErr := ms.Profiles.ReleaseClaim(ctx, candidate.TelegramID); releaseErr != nil {
			log.Printf("failed to release claim on %s: %v", candidate.TelegramID, releaseErr)
		}
		return nil, err
	}

	ms.notifyMatched(ctx, seeker.TelegramID, candidate.DisplayName, sport)
	ms.notifyMatched(ctx, candidate.TelegramID, seeker.DisplayName, sport)
	return &match, nil
}

// notifyMatched delivers the match announcement. The pairing is
// already committed, so a delivery failure is logged rather than
// unwinding the match.
func (ms *MatchService) notifyMatched(ctx context.Context, userID, counterpartName, sport string) {
	text := fmt.Sprintf("You have been matched with @%s for %s! 🎉", counterpartName, sport)
	if err := ms.Notifier.Notify(ctx, userID, text, nil); err != nil {
		log.Printf("failed to notify %s about match: %v", userID, err)
	}
}

// checkSeeker runs the search preconditions, each with its own
// terminal error.
func (ms *MatchService) checkSeeker(ctx context.Context, userID string) (*models.User, error) {
	user, err := ms.Profiles.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}
	if !user.HasCompleteProfile() {
		return nil, ErrProfileIncomplete
	}
	if !user.HasPreferences() {
		return nil, ErrPreferencesIncomplete
	}
	if user.IsMatched {
		return nil, ErrAlreadyMatched
	}
	if len(user.Sports) == 0 {
		return nil, ErrNoSportsRegistered
	}
	return user, nil
}
