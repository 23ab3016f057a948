package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/biteswipe/pkg/api"
)

// GroupServiceName is the fully-qualified name of the GroupService.
const GroupServiceName = "biteswipe.v1.GroupService"

// Procedure paths, for use in routing and interceptors.
const (
	GroupServiceCreateGroupProcedure       = "/biteswipe.v1.GroupService/CreateGroup"
	GroupServiceJoinGroupProcedure         = "/biteswipe.v1.GroupService/JoinGroup"
	GroupServiceLeaveGroupProcedure        = "/biteswipe.v1.GroupService/LeaveGroup"
	GroupServiceGetGroupProcedure          = "/biteswipe.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure        = "/biteswipe.v1.GroupService/ListGroups"
	GroupServiceSubmitPreferencesProcedure = "/biteswipe.v1.GroupService/SubmitPreferences"
	GroupServiceGetMatchProcedure          = "/biteswipe.v1.GroupService/GetMatch"
)

// GroupServiceClient is a client for the biteswipe.v1.GroupService service.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	JoinGroup(context.Context, *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.JoinGroupResponse], error)
	LeaveGroup(context.Context, *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.LeaveGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	SubmitPreferences(context.Context, *connect.Request[api.SubmitPreferencesRequest]) (*connect.Response[api.SubmitPreferencesResponse], error)
	GetMatch(context.Context, *connect.Request[api.GetMatchRequest]) (*connect.Response[api.GetMatchResponse], error)
}

// NewGroupServiceClient constructs a client for the biteswipe.v1.GroupService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &groupServiceClient{
		createGroup: connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](
			httpClient,
			baseURL+GroupServiceCreateGroupProcedure,
			opts...,
		),
		joinGroup: connect.NewClient[api.JoinGroupRequest, api.JoinGroupResponse](
			httpClient,
			baseURL+GroupServiceJoinGroupProcedure,
			opts...,
		),
		leaveGroup: connect.NewClient[api.LeaveGroupRequest, api.LeaveGroupResponse](
			httpClient,
			baseURL+GroupServiceLeaveGroupProcedure,
			opts...,
		),
		getGroup: connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](
			httpClient,
			baseURL+GroupServiceGetGroupProcedure,
			opts...,
		),
		listGroups: connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](
			httpClient,
			baseURL+GroupServiceListGroupsProcedure,
			opts...,
		),
		submitPreferences: connect.NewClient[api.SubmitPreferencesRequest, api.SubmitPreferencesResponse](
			httpClient,
			baseURL+GroupServiceSubmitPreferencesProcedure,
			opts...,
		),
		getMatch: connect.NewClient[api.GetMatchRequest, api.GetMatchResponse](
			httpClient,
			baseURL+GroupServiceGetMatchProcedure,
			opts...,
		),
	}
}

type groupServiceClient struct {
	createGroup       *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	joinGroup         *connect.Client[api.JoinGroupRequest, api.JoinGroupResponse]
	leaveGroup        *connect.Client[api.LeaveGroupRequest, api.LeaveGroupResponse]
	getGroup          *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups        *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	submitPreferences *connect.Client[api.SubmitPreferencesRequest, api.SubmitPreferencesResponse]
	getMatch          *connect.Client[api.GetMatchRequest, api.GetMatchResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.JoinGroupResponse], error) {
	return c.joinGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) LeaveGroup(ctx context.Context, req *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.LeaveGroupResponse], error) {
	return c.leaveGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) SubmitPreferences(ctx context.Context, req *connect.Request[api.SubmitPreferencesRequest]) (*connect.Response[api.SubmitPreferencesResponse], error) {
	return c.submitPreferences.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetMatch(ctx context.Context, req *connect.Request[api.GetMatchRequest]) (*connect.Response[api.GetMatchResponse], error) {
	return c.getMatch.CallUnary(ctx, req)
}

// GroupServiceHandler is implemented by servers of the biteswipe.v1.GroupService service.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	JoinGroup(context.Context, *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.JoinGroupResponse], error)
	LeaveGroup(context.Context, *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.LeaveGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	SubmitPreferences(context.Context, *connect.Request[api.SubmitPreferencesRequest]) (*connect.Response[api.SubmitPreferencesResponse], error)
	GetMatch(context.Context, *connect.Request[api.GetMatchRequest]) (*connect.Response[api.GetMatchResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	groupServiceCreateGroupHandler := connect.NewUnaryHandler(
		GroupServiceCreateGroupProcedure,
		svc.CreateGroup,
		opts...,
	)
	groupServiceJoinGroupHandler := connect.NewUnaryHandler(
		GroupServiceJoinGroupProcedure,
		svc.JoinGroup,
		opts...,
	)
	groupServiceLeaveGroupHandler := connect.NewUnaryHandler(
		GroupServiceLeaveGroupProcedure,
		svc.LeaveGroup,
		opts...,
	)
	groupServiceGetGroupHandler := connect.NewUnaryHandler(
		GroupServiceGetGroupProcedure,
		svc.GetGroup,
		opts...,
	)
	groupServiceListGroupsHandler := connect.NewUnaryHandler(
		GroupServiceListGroupsProcedure,
		svc.ListGroups,
		opts...,
	)
	groupServiceSubmitPreferencesHandler := connect.NewUnaryHandler(
		GroupServiceSubmitPreferencesProcedure,
		svc.SubmitPreferences,
		opts...,
	)
	groupServiceGetMatchHandler := connect.NewUnaryHandler(
		GroupServiceGetMatchProcedure,
		svc.GetMatch,
		opts...,
	)
	return "/biteswipe.v1.GroupService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GroupServiceCreateGroupProcedure:
			groupServiceCreateGroupHandler.ServeHTTP(w, r)
		case GroupServiceJoinGroupProcedure:
			groupServiceJoinGroupHandler.ServeHTTP(w, r)
		case GroupServiceLeaveGroupProcedure:
			groupServiceLeaveGroupHandler.ServeHTTP(w, r)
		case GroupServiceGetGroupProcedure:
			groupServiceGetGroupHandler.ServeHTTP(w, r)
		case GroupServiceListGroupsProcedure:
			groupServiceListGroupsHandler.ServeHTTP(w, r)
		case GroupServiceSubmitPreferencesProcedure:
			groupServiceSubmitPreferencesHandler.ServeHTTP(w, r)
		case GroupServiceGetMatchProcedure:
			groupServiceGetMatchHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedGroupServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGroupServiceHandler struct{}

func (UnimplementedGroupServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("biteswipe.v1.GroupService.CreateGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) JoinGroup(context.Context, *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.JoinGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("biteswipe.v1.GroupService.JoinGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) LeaveGroup(context.Context, *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.LeaveGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("biteswipe.v1.GroupService.LeaveGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("biteswipe.v1.GroupService.GetGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("biteswipe.v1.GroupService.ListGroups is not implemented"))
}

func (UnimplementedGroupServiceHandler) SubmitPreferences(context.Context, *connect.Request[api.SubmitPreferencesRequest]) (*connect.Response[api.SubmitPreferencesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("biteswipe.v1.GroupService.SubmitPreferences is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetMatch(context.Context, *connect.Request[api.GetMatchRequest]) (*connect.Response[api.GetMatchResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("biteswipe.v1.GroupService.GetMatch is not implemented"))
}
