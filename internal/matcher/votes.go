package matcher

import "github.com/mmynk/biteswipe/internal/models"

// AllMembersVoted reports whether every current member has a preference
// entry. It looks only at the snapshot it is given: a member joining later
// makes it false again until they vote.
func AllMembersVoted(group *models.Group) bool {
	if len(group.Members) == 0 {
		return false
	}
	for _, member := range group.Members {
		if !group.HasVoted(member) {
			return false
		}
	}
	return true
}

// PendingVoters returns members who have not submitted yet, in join order.
func PendingVoters(group *models.Group) []string {
	var pending []string
	for _, member := range group.Members {
		if !group.HasVoted(member) {
			pending = append(pending, member)
		}
	}
	return pending
}
