package handlers

import (
	"context"
	"taskKeeper/internal/models/task"

	"github.com/google/uuid"
)

type Service interface {
	CreateTask(ctx context.Context, title, status string) (*task.Task, error)
	ListTasks(ctx context.Context) ([]*task.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*task.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, title, status *string) (*task.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) (bool, error)
}
