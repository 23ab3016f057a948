package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/biteswipe/pkg/api"
)

// RestaurantServiceName is the fully-qualified name of the RestaurantService.
const RestaurantServiceName = "biteswipe.v1.RestaurantService"

// Procedure paths, for use in routing and interceptors.
const (
	RestaurantServiceGetRestaurantProcedure   = "/biteswipe.v1.RestaurantService/GetRestaurant"
	RestaurantServiceListRestaurantsProcedure = "/biteswipe.v1.RestaurantService/ListRestaurants"
)

// RestaurantServiceClient is a client for the biteswipe.v1.RestaurantService service.
type RestaurantServiceClient interface {
	GetRestaurant(context.Context, *connect.Request[api.GetRestaurantRequest]) (*connect.Response[api.GetRestaurantResponse], error)
	ListRestaurants(context.Context, *connect.Request[api.ListRestaurantsRequest]) (*connect.Response[api.ListRestaurantsResponse], error)
}

// NewRestaurantServiceClient constructs a client for the biteswipe.v1.RestaurantService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewRestaurantServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) RestaurantServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &restaurantServiceClient{
		getRestaurant: connect.NewClient[api.GetRestaurantRequest, api.GetRestaurantResponse](
			httpClient,
			baseURL+RestaurantServiceGetRestaurantProcedure,
			opts...,
		),
		listRestaurants: connect.NewClient[api.ListRestaurantsRequest, api.ListRestaurantsResponse](
			httpClient,
			baseURL+RestaurantServiceListRestaurantsProcedure,
			opts...,
		),
	}
}

type restaurantServiceClient struct {
	getRestaurant   *connect.Client[api.GetRestaurantRequest, api.GetRestaurantResponse]
	listRestaurants *connect.Client[api.ListRestaurantsRequest, api.ListRestaurantsResponse]
}

func (c *restaurantServiceClient) GetRestaurant(ctx context.Context, req *connect.Request[api.GetRestaurantRequest]) (*connect.Response[api.GetRestaurantResponse], error) {
	return c.getRestaurant.CallUnary(ctx, req)
}

func (c *restaurantServiceClient) ListRestaurants(ctx context.Context, req *connect.Request[api.ListRestaurantsRequest]) (*connect.Response[api.ListRestaurantsResponse], error) {
	return c.listRestaurants.CallUnary(ctx, req)
}

// RestaurantServiceHandler is implemented by servers of the biteswipe.v1.RestaurantService service.
type RestaurantServiceHandler interface {
	GetRestaurant(context.Context, *connect.Request[api.GetRestaurantRequest]) (*connect.Response[api.GetRestaurantResponse], error)
	ListRestaurants(context.Context, *connect.Request[api.ListRestaurantsRequest]) (*connect.Response[api.ListRestaurantsResponse], error)
}

// NewRestaurantServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewRestaurantServiceHandler(svc RestaurantServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	restaurantServiceGetRestaurantHandler := connect.NewUnaryHandler(
		RestaurantServiceGetRestaurantProcedure,
		svc.GetRestaurant,
		opts...,
	)
	restaurantServiceListRestaurantsHandler := connect.NewUnaryHandler(
		RestaurantServiceListRestaurantsProcedure,
		svc.ListRestaurants,
		opts...,
	)
	return "/biteswipe.v1.RestaurantService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case RestaurantServiceGetRestaurantProcedure:
			restaurantServiceGetRestaurantHandler.ServeHTTP(w, r)
		case RestaurantServiceListRestaurantsProcedure:
			restaurantServiceListRestaurantsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedRestaurantServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedRestaurantServiceHandler struct{}

func (UnimplementedRestaurantServiceHandler) GetRestaurant(context.Context, *connect.Request[api.GetRestaurantRequest]) (*connect.Response[api.GetRestaurantResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("biteswipe.v1.RestaurantService.GetRestaurant is not implemented"))
}

func (UnimplementedRestaurantServiceHandler) ListRestaurants(context.Context, *connect.Request[api.ListRestaurantsRequest]) (*connect.Response[api.ListRestaurantsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("biteswipe.v1.RestaurantService.ListRestaurants is not implemented"))
}
