package models

// ✅ Match statuses
const (
	MatchStatusActive = "active"
	MatchStatusEnded  = "ended"
)

// ✅ Feedback step kinds
const (
	StepGamePlayed     = "gamePlayed"
	StepBotExperience  = "botExperience"
	StepUserExperience = "userExperience"
	StepNoGameReason   = "noGameReason"
)

// ✅ Answers to the "was a game played?" step
const (
	GamePlayedYes = "yes"
	GamePlayedNo  = "no"
)

// NoGameReasons maps the enumerated reason codes shown when no game
// was played to their labels.
var NoGameReasons = map[int]string{
	1: "No common date",
	2: "The other player did not respond",
	3: "Uncomfortable with other player",
	4: "Decided not to play",
	5: "Other",
}

// Choice is one button offered alongside a notification. Token is an
// opaque callback value the transport echoes back when the user picks
// the choice.
type Choice struct {
	Label string `json:"label"`
	Token string `json:"token"`
}
