package service

import (
	"github.com/mmynk/biteswipe/internal/matcher"
	"github.com/mmynk/biteswipe/internal/models"
	"github.com/mmynk/biteswipe/pkg/api"
)

func toAPIGroup(group *models.Group, expired bool) *api.Group {
	voted := make([]string, 0, len(group.Members))
	for _, m := range group.Members {
		if group.HasVoted(m) {
			voted = append(voted, m)
		}
	}
	pending := matcher.PendingVoters(group)
	if pending == nil {
		pending = []string{}
	}

	return &api.Group{
		ID:                  group.ID,
		Name:                group.Name,
		Code:                group.Code,
		CreatorID:           group.CreatorID,
		Members:             group.Members,
		VotedMembers:        voted,
		PendingMembers:      pending,
		MatchedRestaurantID: group.MatchedRestaurantID,
		CreatedAt:           group.CreatedAt,
		ExpiresAt:           group.ExpiresAt,
		Expired:             expired,
	}
}

func toAPIRestaurant(r *models.Restaurant) *api.Restaurant {
	if r == nil {
		return nil
	}
	return &api.Restaurant{
		ID:         r.ID,
		Name:       r.Name,
		ImageURL:   r.ImageURL,
		Cuisine:    r.Cuisine,
		PriceRange: r.PriceRange,
		Rating:     r.Rating,
		Address:    r.Address,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		Phone:      r.Phone,
		Website:    r.Website,
	}
}
