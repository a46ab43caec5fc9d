package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Barbaracwx/telegram-sportsfinder/models"
)

const openTennisPrefs = `{"ageRange":[20,30],"genderPreference":"No preference","skillLevels":["intermediate"],"locationPreferences":["NYC"]}`

func tennisPlayer(id string, age int, gender string) models.User {
	return models.User{
		TelegramID:       id,
		Username:         id + "_handle",
		DisplayName:      id + " display",
		Age:              age,
		Gender:           gender,
		Locations:        []string{"NYC"},
		Sports:           map[string]string{"tennis": "intermediate"},
		MatchPreferences: map[string]string{"tennis": openTennisPrefs},
		CreatedAt:        "2025-01-01T00:00:0" + id[len(id)-1:] + "Z",
	}
}

func waitingTennisPlayer(id string, age int, gender string) models.User {
	user := tennisPlayer(id, age, gender)
	user.WantToBeMatched = true
	user.SelectedSport = "tennis"
	return user
}

func newMatchService(profiles *fakeProfileStore) (*MatchService, *fakeMatchStore, *fakeNotifier) {
	matches := newFakeMatchStore()
	notifier := &fakeNotifier{}
	return &MatchService{Profiles: profiles, Matches: matches, Notifier: notifier}, matches, notifier
}

func TestFindMatchPairsMutuallyCompatibleUsers(t *testing.T) {
	profiles := newFakeProfileStore(
		tennisPlayer("user1", 25, "F"),
		waitingTennisPlayer("user2", 27, "M"),
	)
	service, matches, notifier := newMatchService(profiles)

	match, err := service.FindMatch(context.Background(), "user1", "tennis")
	if err != nil {
		t.Fatalf("FindMatch: %v", err)
	}
	if match == nil {
		t.Fatal("expected a match, got waiting outcome")
	}
	if match.Status != models.MatchStatusActive {
		t.Fatalf("expected active status, got %q", match.Status)
	}
	if match.Sport != "tennis" {
		t.Fatalf("expected tennis match, got %q", match.Sport)
	}
	if matches.activeCount() != 1 {
		t.Fatalf("expected exactly one active match, got %d", matches.activeCount())
	}

	for _, id := range []string{"user1", "user2"} {
		user, _ := profiles.GetUser(context.Background(), id)
		if !user.IsMatched {
			t.Fatalf("expected %s to be matched", id)
		}
		if user.WantToBeMatched {
			t.Fatalf("expected %s waiting flag to be cleared", id)
		}
	}

	for _, id := range []string{"user1", "user2"} {
		found := false
		for _, n := range notifier.sentTo(id) {
			if strings.Contains(n.Text, "You have been matched") {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected match announcement for %s", id)
		}
	}
}

func TestFindMatchRejectsAsymmetricCompatibility(t *testing.T) {
	// The candidate's preference block rejects the seeker on one axis
	// even though the seeker accepts the candidate.
	tests := []struct {
		name          string
		candidatePref string
	}{
		{"gender", `{"genderPreference":"M"}`},
		{"age", `{"ageRange":[40,50]}`},
		{"skill", `{"skillLevels":["advanced"]}`},
		{"location", `{"locationPreferences":["Boston"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := waitingTennisPlayer("user2", 27, "M")
			candidate.MatchPreferences["tennis"] = tt.candidatePref

			profiles := newFakeProfileStore(tennisPlayer("user1", 25, "F"), candidate)
			service, matches, _ := newMatchService(profiles)

			match, err := service.FindMatch(context.Background(), "user1", "tennis")
			if err != nil {
				t.Fatalf("FindMatch: %v", err)
			}
			if match != nil {
				t.Fatal("expected no match for asymmetric compatibility")
			}
			if matches.activeCount() != 0 {
				t.Fatalf("expected no active match, got %d", matches.activeCount())
			}
		})
	}
}

func TestFindMatchLeavesSeekerWaitingWhenPoolIsEmpty(t *testing.T) {
	profiles := newFakeProfileStore(tennisPlayer("user1", 25, "F"))
	service, _, notifier := newMatchService(profiles)

	match, err := service.FindMatch(context.Background(), "user1", "tennis")
	if err != nil {
		t.Fatalf("FindMatch: %v", err)
	}
	if match != nil {
		t.Fatal("expected waiting outcome")
	}

	user, _ := profiles.GetUser(context.Background(), "user1")
	if !user.WantToBeMatched || user.SelectedSport != "tennis" {
		t.Fatalf("expected user1 to stay discoverable, got %+v", user)
	}

	found := false
	for _, n := range notifier.sentTo("user1") {
		if strings.Contains(n.Text, "No match found for tennis") {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a no-match-yet notification")
	}
}

func TestFindMatchSkipsCandidateClaimedConcurrently(t *testing.T) {
	profiles := newFakeProfileStore(
		tennisPlayer("user1", 25, "F"),
		waitingTennisPlayer("user2", 27, "M"),
		waitingTennisPlayer("user3", 24, "F"),
	)
	service, matches, _ := newMatchService(profiles)

	// A concurrent caller takes user2 between the scan and the claim.
	stolen := false
	profiles.onClaim = func(id string) {
		if id == "user2" && !stolen {
			stolen = true
			profiles.mu.Lock()
			profiles.users["user2"].WantToBeMatched = false
			profiles.users["user2"].IsMatched = true
			profiles.mu.Unlock()
		}
	}

	match, err := service.FindMatch(context.Background(), "user1", "tennis")
	if err != nil {
		t.Fatalf("FindMatch: %v", err)
	}
	if match == nil {
		t.Fatal("expected engine to fall through to the next candidate")
	}
	if match.UserBID != "user3" {
		t.Fatalf("expected user3 to be matched, got %s", match.UserBID)
	}
	if matches.activeCount() != 1 {
		t.Fatalf("expected one active match, got %d", matches.activeCount())
	}
}

func TestFindMatchRollsBackWhenSeekerClaimedConcurrently(t *testing.T) {
	profiles := newFakeProfileStore(
		tennisPlayer("user1", 25, "F"),
		waitingTennisPlayer("user2", 27, "M"),
	)
	service, matches, _ := newMatchService(profiles)

	// Another caller matches the seeker mid-scan.
	profiles.onClaim = func(id string) {
		if id == "user1" {
			profiles.mu.Lock()
			profiles.users["user1"].WantToBeMatched = false
			profiles.users["user1"].IsMatched = true
			profiles.mu.Unlock()
		}
	}

	_, err := service.FindMatch(context.Background(), "user1", "tennis")
	if !errors.Is(err, ErrAlreadyMatched) {
		t.Fatalf("expected ErrAlreadyMatched, got %v", err)
	}
	if matches.activeCount() != 0 {
		t.Fatalf("expected no match record, got %d", matches.activeCount())
	}

	// The half-claimed candidate must be back in the waiting pool.
	candidate, _ := profiles.GetUser(context.Background(), "user2")
	if !candidate.WantToBeMatched || candidate.IsMatched {
		t.Fatalf("expected candidate claim to be rolled back, got %+v", candidate)
	}
}

func TestFindMatchRejectsSeekerMatchedBeforeWaitingWrite(t *testing.T) {
	profiles := newFakeProfileStore(tennisPlayer("user1", 25, "F"))
	service, matches, _ := newMatchService(profiles)

	// Another caller matches the seeker between the precondition
	// check and the waiting write.
	profiles.onMarkWaiting = func(id string) {
		profiles.mu.Lock()
		profiles.users[id].IsMatched = true
		profiles.mu.Unlock()
	}

	_, err := service.FindMatch(context.Background(), "user1", "tennis")
	if !errors.Is(err, ErrAlreadyMatched) {
		t.Fatalf("expected ErrAlreadyMatched, got %v", err)
	}
	if matches.activeCount() != 0 {
		t.Fatalf("expected no match record, got %d", matches.activeCount())
	}

	// The seeker must not be left discoverable while matched.
	seeker, _ := profiles.GetUser(context.Background(), "user1")
	if seeker.WantToBeMatched {
		t.Fatalf("expected matched seeker to stay out of the waiting pool, got %+v", seeker)
	}
}

func TestFindMatchPicksFirstCompatibleByCreationOrder(t *testing.T) {
	second := waitingTennisPlayer("user3", 24, "F")
	first := waitingTennisPlayer("user2", 27, "M")

	profiles := newFakeProfileStore(tennisPlayer("user1", 25, "F"), first, second)
	service, _, _ := newMatchService(profiles)

	match, err := service.FindMatch(context.Background(), "user1", "tennis")
	if err != nil {
		t.Fatalf("FindMatch: %v", err)
	}
	if match == nil || match.UserBID != "user2" {
		t.Fatalf("expected first-fit candidate user2, got %+v", match)
	}
}

func TestRequestMatchPreconditions(t *testing.T) {
	complete := tennisPlayer("user1", 25, "F")

	incomplete := tennisPlayer("user2", 25, "F")
	incomplete.Gender = ""

	noPrefs := tennisPlayer("user3", 25, "F")
	noPrefs.MatchPreferences = nil

	matched := tennisPlayer("user4", 25, "F")
	matched.IsMatched = true

	profiles := newFakeProfileStore(complete, incomplete, noPrefs, matched)
	service, _, notifier := newMatchService(profiles)

	tests := []struct {
		userID  string
		wantErr error
	}{
		{"missing", ErrProfileNotFound},
		{"user2", ErrProfileIncomplete},
		{"user3", ErrPreferencesIncomplete},
		{"user4", ErrAlreadyMatched},
	}

	for _, tt := range tests {
		if err := service.RequestMatch(context.Background(), tt.userID); !errors.Is(err, tt.wantErr) {
			t.Fatalf("RequestMatch(%s): expected %v, got %v", tt.userID, tt.wantErr, err)
		}
	}
	if notifier.count() != 0 {
		t.Fatalf("expected no notifications for rejected seekers, got %d", notifier.count())
	}

	if err := service.RequestMatch(context.Background(), "user1"); err != nil {
		t.Fatalf("RequestMatch(user1): %v", err)
	}
	sent := notifier.sentTo("user1")
	if len(sent) != 1 || len(sent[0].Choices) != 1 {
		t.Fatalf("expected one sport-selection prompt with one choice, got %+v", sent)
	}
	if sent[0].Choices[0].Token != "sport:tennis" {
		t.Fatalf("unexpected sport token %q", sent[0].Choices[0].Token)
	}
}

func TestFindMatchTraceHookSeesEveryCandidate(t *testing.T) {
	rejected := waitingTennisPlayer("user2", 27, "M")
	rejected.MatchPreferences["tennis"] = `{"genderPreference":"M"}`

	profiles := newFakeProfileStore(
		tennisPlayer("user1", 25, "F"),
		rejected,
		waitingTennisPlayer("user3", 24, "F"),
	)
	service, _, _ := newMatchService(profiles)

	type decision struct {
		candidate  string
		compatible bool
	}
	var trace []decision
	service.Trace = func(_, candidateID, _ string, compatible bool) {
		trace = append(trace, decision{candidateID, compatible})
	}

	if _, err := service.FindMatch(context.Background(), "user1", "tennis"); err != nil {
		t.Fatalf("FindMatch: %v", err)
	}

	want := []decision{{"user2", false}, {"user3", true}}
	if len(trace) != len(want) {
		t.Fatalf("expected %d trace entries, got %d", len(want), len(trace))
	}
	for i, d := range want {
		if trace[i] != d {
			t.Fatalf("trace[%d]: expected %+v, got %+v", i, d, trace[i])
		}
	}
}
