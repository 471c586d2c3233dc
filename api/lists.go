package api

import (
	"context"
	"fmt"
	"net/http"
)

// CreateList creates a new task list.
func (c *Client) CreateList(ctx context.Context, req CreateListRequest) (*List, error) {
	var list List
	if err := c.do(ctx, http.MethodPost, "/lists/", c.bearer(), req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetList fetches one list.
func (c *Client) GetList(ctx context.Context, listID string) (*List, error) {
	var list List
	if err := c.do(ctx, http.MethodGet, "/lists/"+listID, c.bearer(), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// UserLists fetches all lists owned by a user.
func (c *Client) UserLists(ctx context.Context, userID string) ([]List, error) {
	var lists []List
	if err := c.do(ctx, http.MethodGet, "/lists/user/"+userID, c.bearer(), nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// UpdateList applies a partial update to a list.
func (c *Client) UpdateList(ctx context.Context, listID string, req UpdateListRequest) (*List, error) {
	var list List
	if err := c.do(ctx, http.MethodPut, "/lists/"+listID, c.bearer(), req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteList removes a list.
func (c *Client) DeleteList(ctx context.Context, listID string) (*DeleteListResponse, error) {
	var resp DeleteListResponse
	if err := c.do(ctx, http.MethodDelete, "/lists/"+listID, c.bearer(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// IncrementListVersion bumps the list's optimistic-consistency counter.
func (c *Client) IncrementListVersion(ctx context.Context, listID string) (*List, error) {
	var list List
	if err := c.do(ctx, http.MethodPatch, "/lists/"+listID+"/increment-version", c.bearer(), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ListStats fetches server-computed statistics for a list. The shape is
// owned by the service and not versioned, so it stays loosely typed.
func (c *Client) ListStats(ctx context.Context, listID string) (map[string]any, error) {
	var stats map[string]any
	if err := c.do(ctx, http.MethodGet, "/lists/"+listID+"/stats", c.bearer(), nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// SharedList resolves a share token into the lists it grants access to.
func (c *Client) SharedList(ctx context.Context, shareToken, requesterID string) ([]List, error) {
	var lists []List
	path := fmt.Sprintf("/lists/shared/%s/user/%s", shareToken, requesterID)
	if err := c.do(ctx, http.MethodGet, path, c.bearer(), nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}
