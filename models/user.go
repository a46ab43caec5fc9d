package models

// User defines the structure for user profiles
type User struct {
	TelegramID       string            `dynamodbav:"telegramId" json:"telegramId"`                                 // ✅ Partition Key
	Username         string            `dynamodbav:"username,omitempty" json:"username,omitempty"`                 // Telegram handle
	DisplayName      string            `dynamodbav:"displayName,omitempty" json:"displayName,omitempty"`           // Name shown to matched players
	Age              int               `dynamodbav:"age,omitempty" json:"age,omitempty"`                           // User's age
	Gender           string            `dynamodbav:"gender,omitempty" json:"gender,omitempty"`                     // Gender
	Locations        []string          `dynamodbav:"locations,omitempty" json:"locations,omitempty"`               // Location tags the user plays at
	Sports           map[string]string `dynamodbav:"sports,omitempty" json:"sports,omitempty"`                     // Sport -> skill level
	MatchPreferences map[string]string `dynamodbav:"matchPreferences,omitempty" json:"matchPreferences,omitempty"` // Sport -> serialized preference block
	WantToBeMatched  bool              `dynamodbav:"wantToBeMatched" json:"wantToBeMatched"`                       // Waiting for a match
	SelectedSport    string            `dynamodbav:"selectedSport,omitempty" json:"selectedSport,omitempty"`       // Sport the user is waiting for
	IsMatched        bool              `dynamodbav:"isMatched" json:"isMatched"`                                   // Currently in an active match
	CreatedAt        string            `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`               // RFC3339, candidate scan order
}

// MatchPreference is one sport's preference block. Blocks are stored as
// serialized JSON text on the profile; a block that fails to decode is
// treated as the zero value, which restricts nothing.
type MatchPreference struct {
	AgeRange            []int    `json:"ageRange,omitempty"`            // [min, max], inclusive
	GenderPreference    string   `json:"genderPreference,omitempty"`    // empty or "No preference" accepts any
	SkillLevels         []string `json:"skillLevels,omitempty"`         // empty accepts any
	LocationPreferences []string `json:"locationPreferences,omitempty"` // empty accepts any
}

// HasCompleteProfile reports whether every attribute required for
// matching is present.
func (u *User) HasCompleteProfile() bool {
	return u.Age > 0 && u.Gender != "" && len(u.Locations) > 0 && len(u.Sports) > 0
}

// HasPreferences reports whether at least one non-empty preference
// block is stored.
func (u *User) HasPreferences() bool {
	for _, raw := range u.MatchPreferences {
		if raw != "" {
			return true
		}
	}
	return false
}

// UsersTable is the DynamoDB table name for user profiles
const UsersTable = "Users"
