package services

import (
	"encoding/json"
	"strings"

	"github.com/Barbaracwx/telegram-sportsfinder/models"
)

// Default age range applied when a preference block does not carry one.
const (
	defaultMinAge = 1
	defaultMaxAge = 100
)

// genderNoPreference is the stored value meaning "any gender".
const genderNoPreference = "no preference"

// ParsePreference decodes one sport's serialized preference block.
// Older profiles carry free-form text here; anything that does not
// decode is treated as an empty block, which restricts nothing.
func ParsePreference(raw string) models.MatchPreference {
	var pref models.MatchPreference
	if raw == "" {
		return pref
	}
	if err := json.Unmarshal([]byte(raw), &pref); err != nil {
		return models.MatchPreference{}
	}
	return pref
}

// IsCompatible reports whether a candidate satisfies one user's stated
// preference block for a sport. It is a plain conjunction of the
// gender, age, skill-level, and location predicates; absent fields
// restrict nothing.
func IsCompatible(candidate *models.User, pref models.MatchPreference, sport string) bool {
	return genderAccepted(candidate.Gender, pref.GenderPreference) &&
		ageAccepted(candidate.Age, pref.AgeRange) &&
		skillAccepted(candidate.Sports[sport], pref.SkillLevels) &&
		locationAccepted(candidate.Locations, pref.LocationPreferences)
}

// MutuallyCompatible reports whether both users accept each other under
// their own preference blocks for the sport.
func MutuallyCompatible(a, b *models.User, sport string) bool {
	prefA := ParsePreference(a.MatchPreferences[sport])
	prefB := ParsePreference(b.MatchPreferences[sport])
	return IsCompatible(b, prefA, sport) && IsCompatible(a, prefB, sport)
}

func genderAccepted(gender, preference string) bool {
	if preference == "" || strings.EqualFold(preference, genderNoPreference) {
		return true
	}
	return strings.EqualFold(gender, preference)
}

func ageAccepted(age int, ageRange []int) bool {
	min, max := defaultMinAge, defaultMaxAge
	if len(ageRange) == 2 {
		min, max = ageRange[0], ageRange[1]
	}
	return age >= min && age <= max
}

func skillAccepted(skill string, accepted []string) bool {
	if len(accepted) == 0 {
		return true
	}
	for _, level := range accepted {
		if strings.EqualFold(skill, level) {
			return true
		}
	}
	return false
}

func locationAccepted(locations, accepted []string) bool {
	if len(accepted) == 0 {
		return true
	}
	for _, loc := range locations {
		for _, want := range accepted {
			if strings.EqualFold(loc, want) {
				return true
			}
		}
	}
	return false
}
