package api

import (
	"context"
	"fmt"
	"net/http"
)

// CreateTask creates a task against the list version named in the request.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/tasks/", c.bearer(), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask fetches one task.
func (c *Client) GetTask(ctx context.Context, taskID string) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+taskID, c.bearer(), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CurrentTasks fetches the tasks of the list's current version.
func (c *Client) CurrentTasks(ctx context.Context, listID string) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/tasks/list/"+listID+"/current", c.bearer(), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksForVersion fetches task snapshots for a historical list version.
func (c *Client) TasksForVersion(ctx context.Context, listID string, version int) ([][]Task, error) {
	var tasks [][]Task
	path := fmt.Sprintf("/tasks/list/%s/version/%d", listID, version)
	if err := c.do(ctx, http.MethodGet, path, c.bearer(), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, req UpdateTaskRequest) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+taskID, c.bearer(), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+taskID, c.bearer(), nil, nil)
}

// ToggleTaskComplete flips the task's completion flag.
func (c *Client) ToggleTaskComplete(ctx context.Context, taskID string) (*Task, error) {
	return c.toggle(ctx, "/tasks/toggle-complete/"+taskID)
}

// ToggleTaskPriority flips the task's priority flag.
func (c *Client) ToggleTaskPriority(ctx context.Context, taskID string) (*Task, error) {
	return c.toggle(ctx, "/tasks/toggle-priority/"+taskID)
}

// ToggleTaskRecurring flips the task's recurring flag.
func (c *Client) ToggleTaskRecurring(ctx context.Context, taskID string) (*Task, error) {
	return c.toggle(ctx, "/tasks/toggle-recurring/"+taskID)
}

func (c *Client) toggle(ctx context.Context, path string) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPatch, path, c.bearer(), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ClearList marks every task in the list complete.
func (c *Client) ClearList(ctx context.Context, listID string) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodPatch, "/tasks/clear-list/"+listID, c.bearer(), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// RolloverList carries incomplete tasks into a new list version.
func (c *Client) RolloverList(ctx context.Context, listID string) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodPost, "/tasks/rollover-list/"+listID, c.bearer(), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
