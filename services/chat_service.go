package services

import (
	"context"
	"fmt"
)

// ChatService forwards plain messages between the two sides of an
// active match. Only matched users can relay; everyone else is
// silently out of scope for the transport (the bot ignores the text).
type ChatService struct {
	Profiles ProfileStore
	Matches  MatchStore
	Notifier Notifier
}

// RelayMessage forwards text from a matched user to their counterpart.
func (cs *ChatService) RelayMessage(ctx context.Context, senderID, text string) error {
	sender, err := cs.Profiles.GetUser(ctx, senderID)
	if err != nil {
		return err
	}
	if sender == nil {
		return ErrProfileNotFound
	}
	if !sender.IsMatched {
		return ErrNoActiveMatch
	}

	match, err := cs.Matches.FindActiveMatchForParticipant(ctx, senderID)
	if err != nil {
		return err
	}
	if match == nil {
		return ErrNoActiveMatch
	}

	name := sender.DisplayName
	if name == "" {
		name = sender.Username
	}
	return cs.Notifier.Notify(ctx, match.CounterpartID(senderID),
		fmt.Sprintf("Message from %s: %s", name, text), nil)
}
