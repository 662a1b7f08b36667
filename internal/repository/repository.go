package repository

import (
	"context"
	"errors"
	"taskKeeper/internal/models/task"

	"github.com/google/uuid"
)

// ErrDuplicateID — попытка сохранить задачу с уже занятым id.
// Контракт одинаков для обоих бэкендов: Save только вставляет.
var ErrDuplicateID = errors.New("задача с таким id уже существует")

// TaskRepository — порт хранилища задач. Отсутствие задачи — не ошибка:
// FindByID и Update возвращают (nil, nil), Delete — false.
type TaskRepository interface {
	Save(ctx context.Context, t *task.Task) error
	FindAll(ctx context.Context) ([]*task.Task, error)
	FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error)
	Update(ctx context.Context, t *task.Task) (*task.Task, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
