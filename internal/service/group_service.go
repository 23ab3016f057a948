// Package service implements the Connect RPC handlers.
package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/biteswipe/internal/engine"
	"github.com/mmynk/biteswipe/pkg/api"
	"github.com/mmynk/biteswipe/pkg/api/apiconnect"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	engine *engine.Engine
}

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// NewGroupService creates a new GroupService backed by the matching engine.
func NewGroupService(e *engine.Engine) *GroupService {
	return &GroupService{engine: e}
}

// CreateGroup creates a new group owned by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received", "name", req.Msg.Name, "user_id", caller.UserID)

	group, err := s.engine.CreateGroup(ctx, caller, req.Msg.Name)
	if err != nil {
		slog.Error("CreateGroup failed", "user_id", caller.UserID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CreateGroupResponse{
		Group: toAPIGroup(group, s.engine.IsExpired(group)),
	}), nil
}

// JoinGroup adds the caller to the group with the given code.
func (s *GroupService) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.JoinGroupResponse], error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("JoinGroup request received", "code", req.Msg.Code, "user_id", caller.UserID)

	group, err := s.engine.JoinGroup(ctx, caller, req.Msg.Code)
	if err != nil {
		slog.Error("JoinGroup failed", "code", req.Msg.Code, "user_id", caller.UserID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.JoinGroupResponse{
		Group: toAPIGroup(group, s.engine.IsExpired(group)),
	}), nil
}

// LeaveGroup removes the caller from a group.
func (s *GroupService) LeaveGroup(ctx context.Context, req *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.LeaveGroupResponse], error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("LeaveGroup request received", "group_id", req.Msg.GroupID, "user_id", caller.UserID)

	result, err := s.engine.LeaveGroup(ctx, caller, req.Msg.GroupID)
	if err != nil {
		slog.Error("LeaveGroup failed", "group_id", req.Msg.GroupID, "user_id", caller.UserID, "error", err)
		return nil, toConnectError(err)
	}

	resp := &api.LeaveGroupResponse{Deleted: result.Deleted}
	if result.Group != nil {
		resp.Group = toAPIGroup(result.Group, s.engine.IsExpired(result.Group))
	}
	return connect.NewResponse(resp), nil
}

// GetGroup retrieves a group the caller belongs to.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID, "user_id", caller.UserID)

	group, err := s.engine.GetGroup(ctx, caller, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetGroupResponse{
		Group: toAPIGroup(group, s.engine.IsExpired(group)),
	}), nil
}

// ListGroups returns every group the caller belongs to, newest first.
func (s *GroupService) ListGroups(ctx context.Context, _ *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListGroups request received", "user_id", caller.UserID)

	groups, err := s.engine.ListGroups(ctx, caller)
	if err != nil {
		slog.Error("ListGroups failed", "user_id", caller.UserID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Group, len(groups))
	for i, group := range groups {
		out[i] = toAPIGroup(group, s.engine.IsExpired(group))
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// SubmitPreferences records the restaurants the caller liked.
func (s *GroupService) SubmitPreferences(ctx context.Context, req *connect.Request[api.SubmitPreferencesRequest]) (*connect.Response[api.SubmitPreferencesResponse], error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("SubmitPreferences request received",
		"group_id", req.Msg.GroupID,
		"user_id", caller.UserID,
		"liked_count", len(req.Msg.RestaurantIDs),
	)

	group, err := s.engine.SubmitPreferences(ctx, caller, req.Msg.GroupID, req.Msg.RestaurantIDs)
	if err != nil {
		slog.Error("SubmitPreferences failed", "group_id", req.Msg.GroupID, "user_id", caller.UserID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.SubmitPreferencesResponse{
		Group: toAPIGroup(group, s.engine.IsExpired(group)),
	}), nil
}

// GetMatch returns the group's match status and restaurant, if any.
func (s *GroupService) GetMatch(ctx context.Context, req *connect.Request[api.GetMatchRequest]) (*connect.Response[api.GetMatchResponse], error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetMatch request received", "group_id", req.Msg.GroupID, "user_id", caller.UserID)

	outcome, err := s.engine.GetMatch(ctx, caller, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetMatch failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetMatchResponse{
		Status:     string(outcome.Status),
		Restaurant: toAPIRestaurant(outcome.Restaurant),
	}), nil
}
