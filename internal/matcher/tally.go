package matcher

import "github.com/mmynk/biteswipe/internal/models"

// Tally counts, per restaurant, how many members liked it.
type Tally map[string]int

// CountLikes builds a tally from the preferences of current members.
// A member listing the same restaurant twice still counts once, and
// entries for users who are not members are ignored.
func CountLikes(members []string, preferences map[string][]string) Tally {
	tally := make(Tally)
	for _, member := range members {
		liked, ok := preferences[member]
		if !ok {
			continue
		}

		seen := make(map[string]bool, len(liked))
		for _, restaurantID := range liked {
			if seen[restaurantID] {
				continue
			}
			seen[restaurantID] = true
			tally[restaurantID]++
		}
	}
	return tally
}

// Best returns the restaurant with the highest count and that count.
// Ties go to the lexicographically smallest ID so the result never depends
// on map iteration order. An empty tally returns ("", 0).
func (t Tally) Best() (string, int) {
	best, max := "", 0
	for restaurantID, count := range t {
		if count > max || (count == max && count > 0 && restaurantID < best) {
			best, max = restaurantID, count
		}
	}
	return best, max
}

// Resolve selects the matched restaurant for a group where every member has
// voted. ok is false when nobody liked anything.
func Resolve(group *models.Group) (restaurantID string, ok bool) {
	best, count := CountLikes(group.Members, group.Preferences).Best()
	if count == 0 {
		return "", false
	}
	return best, true
}
