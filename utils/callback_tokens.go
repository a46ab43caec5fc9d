package utils

import "strings"

// Callback tokens are the opaque values carried by notification
// choices. The transport echoes the picked token back unchanged, so
// the encoding only has to be unambiguous, not pretty:
//
//	sport:<sport>
//	feedback:<step>:<matchId>:<value>
const (
	tokenKindSport    = "sport"
	tokenKindFeedback = "feedback"
)

// CallbackToken is the decoded form of a choice token.
type CallbackToken struct {
	Kind    string // "sport" or "feedback"
	Sport   string // set for sport tokens
	Step    string // set for feedback tokens
	MatchID string
	Value   string
}

// SportToken encodes a sport-selection token
func SportToken(sport string) string {
	return tokenKindSport + ":" + sport
}

// FeedbackToken encodes a feedback-answer token
func FeedbackToken(step, matchID, value string) string {
	return strings.Join([]string{tokenKindFeedback, step, matchID, value}, ":")
}

// ParseCallbackToken decodes a token echoed back by the transport.
// The second return value is false for anything unparseable.
func ParseCallbackToken(token string) (CallbackToken, bool) {
	switch {
	case strings.HasPrefix(token, tokenKindSport+":"):
		sport := token[len(tokenKindSport)+1:]
		if sport == "" {
			return CallbackToken{}, false
		}
		return CallbackToken{Kind: tokenKindSport, Sport: sport}, true

	case strings.HasPrefix(token, tokenKindFeedback+":"):
		parts := strings.SplitN(token, ":", 4)
		if len(parts) != 4 || parts[1] == "" || parts[2] == "" || parts[3] == "" {
			return CallbackToken{}, false
		}
		return CallbackToken{
			Kind:    tokenKindFeedback,
			Step:    parts[1],
			MatchID: parts[2],
			Value:   parts[3],
		}, true
	}
	return CallbackToken{}, false
}
