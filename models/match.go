package models

// Match defines the structure for match records. A match is never
// deleted; ended matches are retained as history, and the per-side
// feedback fields are written independently for side A and side B.
type Match struct {
	MatchID       string `dynamodbav:"matchId" json:"matchId"` // ✅ Partition Key
	UserAID       string `dynamodbav:"userAId" json:"userAId"`
	UserBID       string `dynamodbav:"userBId" json:"userBId"`
	UserAUsername string `dynamodbav:"userAUsername,omitempty" json:"userAUsername,omitempty"`
	UserBUsername string `dynamodbav:"userBUsername,omitempty" json:"userBUsername,omitempty"`
	Sport         string `dynamodbav:"sport" json:"sport"`
	Status        string `dynamodbav:"status" json:"status"` // active | ended
	CreatedAt     string `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`

	// Feedback block, unset until the participant answers.
	GamePlayedA     string `dynamodbav:"gamePlayedA,omitempty" json:"gamePlayedA,omitempty"` // "yes" | "no"
	GamePlayedB     string `dynamodbav:"gamePlayedB,omitempty" json:"gamePlayedB,omitempty"`
	BotExperienceA  int    `dynamodbav:"botExperienceA,omitempty" json:"botExperienceA,omitempty"` // 1..5
	BotExperienceB  int    `dynamodbav:"botExperienceB,omitempty" json:"botExperienceB,omitempty"`
	UserExperienceA int    `dynamodbav:"userExperienceA,omitempty" json:"userExperienceA,omitempty"` // 1..5
	UserExperienceB int    `dynamodbav:"userExperienceB,omitempty" json:"userExperienceB,omitempty"`
	NoGameReasonA   int    `dynamodbav:"noGameReasonA,omitempty" json:"noGameReasonA,omitempty"` // 1..5
	NoGameReasonB   int    `dynamodbav:"noGameReasonB,omitempty" json:"noGameReasonB,omitempty"`
}

// Side reports which side of the match the given user is on: "A", "B",
// or "" when the user is not a participant.
func (m *Match) Side(userID string) string {
	switch userID {
	case m.UserAID:
		return "A"
	case m.UserBID:
		return "B"
	}
	return ""
}

// CounterpartID returns the other participant's id, or "" when the
// given user is not a participant.
func (m *Match) CounterpartID(userID string) string {
	switch userID {
	case m.UserAID:
		return m.UserBID
	case m.UserBID:
		return m.UserAID
	}
	return ""
}

// MatchesTable is the DynamoDB table name for match records
const MatchesTable = "Matches"
