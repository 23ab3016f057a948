package models

// Caller is the authenticated identity behind a request.
// It is passed explicitly into every engine operation.
type Caller struct {
	UserID string
}

// MatchStatus describes where a group is in the matching process.
type MatchStatus string

const (
	// MatchPending means at least one member has not submitted preferences.
	MatchPending MatchStatus = "pending"
	// MatchMatched means a restaurant was selected.
	MatchMatched MatchStatus = "matched"
	// MatchNone means everyone voted but nobody liked anything.
	MatchNone MatchStatus = "no_match"
)

// MatchOutcome is the answer to "what did my group pick?".
type MatchOutcome struct {
	Status       MatchStatus
	RestaurantID string
	Restaurant   *Restaurant // set only when Status is MatchMatched
}
