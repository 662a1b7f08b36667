package service

import (
	"context"
	"fmt"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/models/task"
	"taskKeeper/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskService — слой use-case'ов. Валидацию делает сущность,
// персистентность — внедрённый порт хранилища; между вызовами сервис
// не держит ссылок на задачи.
type TaskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) TaskService {
	return TaskService{
		repo: repo,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, title, status string) (*task.Task, error) {
	newTask, err := task.New(title, status)
	if err != nil {
		logger.Warn("Service: Ошибка валидации при создании задачи", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Save(ctx, newTask); err != nil {
		return nil, fmt.Errorf("сохранение задачи: %w", err)
	}

	logger.Info("Service: Задача создана", zap.String("task_id", newTask.ID.String()))
	return newTask, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]*task.Task, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	return tasks, nil
}

// GetTask возвращает (nil, nil), если задачи нет — это не ошибка.
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	if found == nil {
		logger.Info("Service: Задача не найдена", zap.String("task_id", id.String()))
	}
	return found, nil
}

// UpdateTask применяет только переданные поля; каждое проходит валидацию
// сущности до обращения к хранилищу. Отсутствующая задача — (nil, nil).
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, title, status *string) (*task.Task, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	if current == nil {
		logger.Info("Service: Задача не найдена", zap.String("task_id", id.String()))
		return nil, nil
	}

	if title != nil {
		if err := current.UpdateTitle(*title); err != nil {
			logger.Warn("Service: Ошибка валидации при обновлении задачи", zap.Error(err))
			return nil, err
		}
	}

	if status != nil {
		if err := current.UpdateStatus(*status); err != nil {
			logger.Warn("Service: Ошибка валидации при обновлении задачи", zap.Error(err))
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	// задачу могли удалить между чтением и записью
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("удаление задачи: %w", err)
	}

	return deleted, nil
}
