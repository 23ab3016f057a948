package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/biteswipe/internal/storage"
	"github.com/mmynk/biteswipe/pkg/api"
	"github.com/mmynk/biteswipe/pkg/api/apiconnect"
)

// RestaurantService serves the restaurant catalog members swipe through.
type RestaurantService struct {
	apiconnect.UnimplementedRestaurantServiceHandler
	store storage.Store
}

var _ apiconnect.RestaurantServiceHandler = (*RestaurantService)(nil)

// NewRestaurantService creates a new RestaurantService with the given storage backend.
func NewRestaurantService(store storage.Store) *RestaurantService {
	return &RestaurantService{store: store}
}

// GetRestaurant retrieves one catalog entry.
func (s *RestaurantService) GetRestaurant(ctx context.Context, req *connect.Request[api.GetRestaurantRequest]) (*connect.Response[api.GetRestaurantResponse], error) {
	if _, err := requireCaller(ctx); err != nil {
		return nil, err
	}
	id := strings.TrimSpace(req.Msg.RestaurantID)
	slog.Info("GetRestaurant request received", "restaurant_id", id)

	if id == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("restaurant_id required"))
	}

	restaurant, err := s.store.GetRestaurant(ctx, id)
	if err != nil {
		slog.Error("GetRestaurant failed", "restaurant_id", id, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetRestaurantResponse{
		Restaurant: toAPIRestaurant(restaurant),
	}), nil
}

// ListRestaurants returns the catalog, optionally filtered by cuisine.
func (s *RestaurantService) ListRestaurants(ctx context.Context, req *connect.Request[api.ListRestaurantsRequest]) (*connect.Response[api.ListRestaurantsResponse], error) {
	if _, err := requireCaller(ctx); err != nil {
		return nil, err
	}
	cuisine := strings.TrimSpace(req.Msg.Cuisine)
	slog.Info("ListRestaurants request received", "cuisine", cuisine)

	restaurants, err := s.store.ListRestaurants(ctx, cuisine)
	if err != nil {
		slog.Error("ListRestaurants failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Restaurant, len(restaurants))
	for i, r := range restaurants {
		out[i] = toAPIRestaurant(r)
	}

	slog.Info("ListRestaurants successful", "count", len(out))

	return connect.NewResponse(&api.ListRestaurantsResponse{Restaurants: out}), nil
}
