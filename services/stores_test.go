package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/Barbaracwx/telegram-sportsfinder/models"
)

// In-memory fakes implementing the store and notifier contracts.

type fakeProfileStore struct {
	mu    sync.Mutex
	users map[string]*models.User
	order []string

	// onClaim, when set, runs before each claim is checked. Tests use
	// it to simulate a concurrent caller stealing the user.
	onClaim func(id string)

	// onMarkWaiting runs before each waiting write is checked, for
	// simulating a pairing committed since the precondition check.
	onMarkWaiting func(id string)
}

func newFakeProfileStore(users ...models.User) *fakeProfileStore {
	store := &fakeProfileStore{users: make(map[string]*models.User)}
	for i := range users {
		u := users[i]
		store.users[u.TelegramID] = &u
		store.order = append(store.order, u.TelegramID)
	}
	return store
}

func (f *fakeProfileStore) CreateUser(_ context.Context, user models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[user.TelegramID]; !exists {
		f.order = append(f.order, user.TelegramID)
	}
	f.users[user.TelegramID] = &user
	return nil
}

func (f *fakeProfileStore) GetUser(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeProfileStore) UpdateUser(_ context.Context, id string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	applyUserFields(user, fields)
	return nil
}

func (f *fakeProfileStore) UpdateUsers(ctx context.Context, ids []string, fields map[string]interface{}) error {
	for _, id := range ids {
		if err := f.UpdateUser(ctx, id, fields); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeProfileStore) ListWaitingBySport(_ context.Context, sport, excludeID string) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var waiting []models.User
	for _, id := range f.order {
		user := f.users[id]
		if id == excludeID || !user.WantToBeMatched || user.SelectedSport != sport {
			continue
		}
		waiting = append(waiting, *user)
	}
	return waiting, nil
}

func (f *fakeProfileStore) MarkWaiting(_ context.Context, id, sport string) error {
	if f.onMarkWaiting != nil {
		f.onMarkWaiting(id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	if user.IsMatched {
		return ErrAlreadyMatched
	}
	user.WantToBeMatched = true
	user.SelectedSport = sport
	return nil
}

func (f *fakeProfileStore) ClaimForMatch(_ context.Context, id string) error {
	if f.onClaim != nil {
		f.onClaim(id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok || !user.WantToBeMatched || user.IsMatched {
		return ErrNotWaiting
	}
	user.WantToBeMatched = false
	user.IsMatched = true
	return nil
}

func (f *fakeProfileStore) ReleaseClaim(ctx context.Context, id string) error {
	return f.UpdateUser(ctx, id, map[string]interface{}{
		"isMatched":       false,
		"wantToBeMatched": true,
	})
}

func applyUserFields(user *models.User, fields map[string]interface{}) {
	for field, value := range fields {
		switch field {
		case "wantToBeMatched":
			user.WantToBeMatched = value.(bool)
		case "isMatched":
			user.IsMatched = value.(bool)
		case "selectedSport":
			user.SelectedSport = value.(string)
		}
	}
}

type fakeMatchStore struct {
	mu      sync.Mutex
	matches map[string]*models.Match
}

func newFakeMatchStore(matches ...models.Match) *fakeMatchStore {
	store := &fakeMatchStore{matches: make(map[string]*models.Match)}
	for i := range matches {
		m := matches[i]
		store.matches[m.MatchID] = &m
	}
	return store
}

func (f *fakeMatchStore) InsertMatch(_ context.Context, match models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches[match.MatchID] = &match
	return nil
}

func (f *fakeMatchStore) GetMatch(_ context.Context, matchID string) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	match, ok := f.matches[matchID]
	if !ok {
		return nil, nil
	}
	copied := *match
	return &copied, nil
}

func (f *fakeMatchStore) FindActiveMatchForParticipant(_ context.Context, userID string) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, match := range f.matches {
		if match.Status != models.MatchStatusActive {
			continue
		}
		if match.UserAID == userID || match.UserBID == userID {
			copied := *match
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeMatchStore) UpdateMatch(_ context.Context, matchID string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	match, ok := f.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s not found", matchID)
	}
	for field, value := range fields {
		switch field {
		case "status":
			match.Status = value.(string)
		case "gamePlayedA":
			match.GamePlayedA = value.(string)
		case "gamePlayedB":
			match.GamePlayedB = value.(string)
		case "botExperienceA":
			match.BotExperienceA = value.(int)
		case "botExperienceB":
			match.BotExperienceB = value.(int)
		case "userExperienceA":
			match.UserExperienceA = value.(int)
		case "userExperienceB":
			match.UserExperienceB = value.(int)
		case "noGameReasonA":
			match.NoGameReasonA = value.(int)
		case "noGameReasonB":
			match.NoGameReasonB = value.(int)
		}
	}
	return nil
}

func (f *fakeMatchStore) activeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, match := range f.matches {
		if match.Status == models.MatchStatusActive {
			count++
		}
	}
	return count
}

type sentNotification struct {
	UserID  string
	Text    string
	Choices []models.Choice
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (f *fakeNotifier) Notify(_ context.Context, userID, text string, choices []models.Choice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotification{UserID: userID, Text: text, Choices: choices})
	return nil
}

func (f *fakeNotifier) sentTo(userID string) []sentNotification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentNotification
	for _, n := range f.sent {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
