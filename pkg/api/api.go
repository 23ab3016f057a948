// Package api defines the request and response messages of the biteswipe.v1
// RPC services. Messages are encoded as JSON with camelCase field names.
package api

import "time"

// Group is the client-facing view of a group.
type Group struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Code                string    `json:"code"`
	CreatorID           string    `json:"creatorId"`
	Members             []string  `json:"members"`
	VotedMembers        []string  `json:"votedMembers"`
	PendingMembers      []string  `json:"pendingMembers"`
	MatchedRestaurantID string    `json:"matchedRestaurantId,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	ExpiresAt           time.Time `json:"expiresAt"`
	Expired             bool      `json:"expired"`
}

type Restaurant struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	ImageURL   string  `json:"imageUrl,omitempty"`
	Cuisine    string  `json:"cuisine,omitempty"`
	PriceRange string  `json:"priceRange,omitempty"`
	Rating     float64 `json:"rating,omitempty"`
	Address    string  `json:"address,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Website    string  `json:"website,omitempty"`
}

// MatchStatus values.
const (
	MatchStatusPending = "pending"
	MatchStatusMatched = "matched"
	MatchStatusNone    = "no_match"
)

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type JoinGroupRequest struct {
	Code string `json:"code"`
}

type JoinGroupResponse struct {
	Group *Group `json:"group"`
}

type LeaveGroupRequest struct {
	GroupID string `json:"groupId"`
}

// LeaveGroupResponse carries exactly one outcome. Deleted is true when the
// group no longer exists, either because the caller was its last member or
// because everyone else left concurrently. Otherwise Group is the remaining
// state.
type LeaveGroupResponse struct {
	Deleted bool   `json:"deleted"`
	Group   *Group `json:"group,omitempty"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

// SubmitPreferencesRequest replaces the caller's liked list. A missing or
// empty list is a vote for nothing.
type SubmitPreferencesRequest struct {
	GroupID       string   `json:"groupId"`
	RestaurantIDs []string `json:"restaurantIds"`
}

type SubmitPreferencesResponse struct {
	Group *Group `json:"group"`
}

type GetMatchRequest struct {
	GroupID string `json:"groupId"`
}

// GetMatchResponse carries the match status and, when matched, the
// restaurant.
type GetMatchResponse struct {
	Status     string      `json:"status"`
	Restaurant *Restaurant `json:"restaurant,omitempty"`
}

type GetRestaurantRequest struct {
	RestaurantID string `json:"restaurantId"`
}

type GetRestaurantResponse struct {
	Restaurant *Restaurant `json:"restaurant"`
}

type ListRestaurantsRequest struct {
	Cuisine string `json:"cuisine,omitempty"`
}

type ListRestaurantsResponse struct {
	Restaurants []*Restaurant `json:"restaurants"`
}
