package services

import "errors"

// Terminal errors for the matching, lifecycle, and chat flows. The
// controllers map each of these onto a user-facing reply; anything
// else is treated as unexpected.
var (
	// ErrProfileNotFound reports a Telegram id with no stored profile.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileIncomplete reports a profile missing age, gender,
	// locations, or sports.
	ErrProfileIncomplete = errors.New("profile incomplete")

	// ErrPreferencesIncomplete reports a user with no saved match
	// preferences.
	ErrPreferencesIncomplete = errors.New("match preferences incomplete")

	// ErrAlreadyMatched reports a user who already has an active
	// pairing.
	ErrAlreadyMatched = errors.New("user is already matched")

	// ErrNoSportsRegistered reports a user with no registered sports,
	// or a search for a sport the user never registered.
	ErrNoSportsRegistered = errors.New("no sports registered")

	// ErrNoActiveMatch reports a user with no pairing to end or relay
	// messages through.
	ErrNoActiveMatch = errors.New("no active match")

	// ErrMatchNotFound reports a match id with no stored record.
	ErrMatchNotFound = errors.New("match not found")

	// ErrNotAParticipant reports feedback from a user who is not a
	// side of the match it names.
	ErrNotAParticipant = errors.New("user is not a participant of the match")

	// ErrMalformedCallbackToken reports a callback token that failed
	// to parse or carried an out-of-range value.
	ErrMalformedCallbackToken = errors.New("malformed callback token")

	// ErrNotWaiting reports a claim on a user who left the waiting
	// state. Internal to the matching engine's commit path.
	ErrNotWaiting = errors.New("user is not waiting for a match")
)
