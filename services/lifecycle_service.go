package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"

	"github.com/Barbaracwx/telegram-sportsfinder/models"
	"github.com/Barbaracwx/telegram-sportsfinder/utils"
)

// LifecycleService drives a match from active to ended and runs the
// per-participant feedback conversation that follows. The two
// participants' feedback sequences are independent state machines over
// the same match record.
type LifecycleService struct {
	Profiles ProfileStore
	Matches  MatchStore
	Notifier Notifier
}

// EndMatch terminates the requester's active match, clears both
// participants' matching flags, and opens the feedback sub-flow for
// both sides.
func (ls *LifecycleService) EndMatch(ctx context.Context, userID string) (*models.Match, error) {
	user, err := ls.Profiles.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}
	if !user.IsMatched {
		return nil, ErrNoActiveMatch
	}

	match, err := ls.Matches.FindActiveMatchForParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, ErrNoActiveMatch
	}

	if err := ls.Matches.UpdateMatch(ctx, match.MatchID, map[string]interface{}{
		"status": models.MatchStatusEnded,
	}); err != nil {
		return nil, err
	}

	if err := ls.Profiles.UpdateUsers(ctx, []string{match.UserAID, match.UserBID}, map[string]interface{}{
		"isMatched":       false,
		"wantToBeMatched": false,
	}); err != nil {
		return nil, err
	}

	ls.notify(ctx, userID, "Your match has ended.", nil)
	ls.notify(ctx, match.CounterpartID(userID), "The other sports-finder has ended the match.", nil)

	ls.promptGamePlayed(ctx, match.MatchID, match.UserAID)
	ls.promptGamePlayed(ctx, match.MatchID, match.UserBID)

	return match, nil
}

// FeedbackAnswered records one participant's answer for a feedback
// step and advances that participant's sub-flow. Answers are
// last-write-wins: a repeated answer overwrites the field and touches
// nothing else.
func (ls *LifecycleService) FeedbackAnswered(ctx context.Context, userID, step, matchID, value string) error {
	match, err := ls.Matches.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if match == nil {
		return ErrMatchNotFound
	}

	side := match.Side(userID)
	if side == "" {
		return ErrNotAParticipant
	}

	switch step {
	case models.StepGamePlayed:
		if value != models.GamePlayedYes && value != models.GamePlayedNo {
			return ErrMalformedCallbackToken
		}
		if err := ls.record(ctx, matchID, models.StepGamePlayed+side, value); err != nil {
			return err
		}
		if value == models.GamePlayedYes {
			ls.promptBotExperience(ctx, matchID, userID)
		} else {
			ls.promptNoGameReason(ctx, matchID, userID)
		}

	case models.StepBotExperience:
		rating, err := parseRating(value)
		if err != nil {
			return err
		}
		if err := ls.record(ctx, matchID, models.StepBotExperience+side, rating); err != nil {
			return err
		}
		ls.promptUserExperience(ctx, matchID, userID)

	case models.StepUserExperience:
		rating, err := parseRating(value)
		if err != nil {
			return err
		}
		if err := ls.record(ctx, matchID, models.StepUserExperience+side, rating); err != nil {
			return err
		}
		ls.notify(ctx, userID, "Thank you for your feedback! See you at your next game! 🎾", nil)

	case models.StepNoGameReason:
		reason, err := parseRating(value)
		if err != nil {
			return err
		}
		if err := ls.record(ctx, matchID, models.StepNoGameReason+side, reason); err != nil {
			return err
		}
		ls.notify(ctx, userID, "Thank you for your feedback! Hope the next match works out! 🎾", nil)

	default:
		return ErrMalformedCallbackToken
	}

	return nil
}

func (ls *LifecycleService) record(ctx context.Context, matchID, field string, value interface{}) error {
	return ls.Matches.UpdateMatch(ctx, matchID, map[string]interface{}{field: value})
}

func (ls *LifecycleService) promptGamePlayed(ctx context.Context, matchID, userID string) {
	choices := []models.Choice{
		{Label: "Yes", Token: utils.FeedbackToken(models.StepGamePlayed, matchID, models.GamePlayedYes)},
		{Label: "No", Token: utils.FeedbackToken(models.StepGamePlayed, matchID, models.GamePlayedNo)},
	}
	ls.notify(ctx, userID, "Did you manage to play your game?", choices)
}

func (ls *LifecycleService) promptBotExperience(ctx context.Context, matchID, userID string) {
	ls.notify(ctx, userID, "Great! How was your experience with SportsFinder?",
		ratingChoices(models.StepBotExperience, matchID))
}

func (ls *LifecycleService) promptUserExperience(ctx context.Context, matchID, userID string) {
	ls.notify(ctx, userID, "How was your experience with the other player?",
		ratingChoices(models.StepUserExperience, matchID))
}

func (ls *LifecycleService) promptNoGameReason(ctx context.Context, matchID, userID string) {
	codes := make([]int, 0, len(models.NoGameReasons))
	for code := range models.NoGameReasons {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	choices := make([]models.Choice, 0, len(codes))
	for _, code := range codes {
		choices = append(choices, models.Choice{
			Label: models.NoGameReasons[code],
			Token: utils.FeedbackToken(models.StepNoGameReason, matchID, strconv.Itoa(code)),
		})
	}
	ls.notify(ctx, userID, "Sorry to hear that! What got in the way?", choices)
}

func ratingChoices(step, matchID string) []models.Choice {
	choices := make([]models.Choice, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		value := strconv.Itoa(rating)
		choices = append(choices, models.Choice{
			Label: fmt.Sprintf("%s ⭐", value),
			Token: utils.FeedbackToken(step, matchID, value),
		})
	}
	return choices
}

func parseRating(value string) (int, error) {
	rating, err := strconv.Atoi(value)
	if err != nil || rating < 1 || rating > 5 {
		return 0, ErrMalformedCallbackToken
	}
	return rating, nil
}

// notify sends a prompt. The state transition already happened by the
// time prompts go out, so delivery failures are logged, not returned.
func (ls *LifecycleService) notify(ctx context.Context, userID, text string, choices []models.Choice) {
	if err := ls.Notifier.Notify(ctx, userID, text, choices); err != nil {
		log.Printf("failed to notify %s: %v", userID, err)
	}
}
