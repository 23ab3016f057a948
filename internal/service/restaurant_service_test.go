package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/biteswipe/pkg/api"
)

func TestGetRestaurant(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()

	resp, err := s.restaurants.GetRestaurant(ctx, as(t, s, "alice", &api.GetRestaurantRequest{RestaurantID: "r1"}))
	if err != nil {
		t.Fatalf("GetRestaurant failed: %v", err)
	}
	if resp.Msg.Restaurant.Name != "Pho Palace" || resp.Msg.Restaurant.PriceRange != "$$" {
		t.Errorf("unexpected restaurant: %+v", resp.Msg.Restaurant)
	}

	_, err = s.restaurants.GetRestaurant(ctx, as(t, s, "alice", &api.GetRestaurantRequest{RestaurantID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = s.restaurants.GetRestaurant(ctx, as(t, s, "alice", &api.GetRestaurantRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestListRestaurants(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		cuisine string
		want    []string
	}{
		{"all, ordered by name", "", []string{"r3", "r1", "r2"}},
		{"filtered by cuisine", "Mexican", []string{"r3", "r2"}},
		{"unknown cuisine", "Martian", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.restaurants.ListRestaurants(ctx, as(t, s, "alice", &api.ListRestaurantsRequest{Cuisine: tt.cuisine}))
			if err != nil {
				t.Fatalf("ListRestaurants failed: %v", err)
			}
			var got []string
			for _, r := range resp.Msg.Restaurants {
				got = append(got, r.ID)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
