package dto

import (
	"taskKeeper/internal/models/task"
)

type CreateTaskRequest struct {
	Title  string `json:"title"`
	Status string `json:"status,omitempty"`
}

type UpdateTaskRequest struct {
	Title  *string `json:"title,omitempty"`
	Status *string `json:"status,omitempty"`
}

type TaskResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Storage string `json:"storage"`
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID.String(),
		Title:     t.Title,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt.Format(task.TimeLayout),
		UpdatedAt: t.UpdatedAt.Format(task.TimeLayout),
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}
