package inmemory

import (
	"context"
	"sort"
	"sync"
	"taskKeeper/internal/models/task"
	"taskKeeper/internal/repository"

	"github.com/google/uuid"
)

// TaskStorage — хранилище в памяти, живёт только в рамках процесса.
// Мьютекс защищает саму map; одновременная мутация одной и той же задачи
// из нескольких запросов остаётся неопределённым поведением.
type TaskStorage struct {
	storage map[uuid.UUID]*task.Task
	mtx     *sync.RWMutex
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[uuid.UUID]*task.Task),
		mtx:     &sync.RWMutex{},
	}
}

var _ repository.TaskRepository = (*TaskStorage)(nil)

func (s *TaskStorage) Save(ctx context.Context, taskToSave *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[taskToSave.ID]; ok {
		return repository.ErrDuplicateID
	}

	s.storage[taskToSave.ID] = taskToSave.Clone()
	return nil
}

// FindAll — снимок всех задач, от самых свежих к старым.
func (s *TaskStorage) FindAll(ctx context.Context) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*task.Task, 0, len(s.storage))
	for _, t := range s.storage {
		res = append(res, t.Clone())
	}

	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID.String() < res[j].ID.String()
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})

	return res, nil
}

func (s *TaskStorage) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return nil, nil
	}
	return taskToGet.Clone(), nil
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) (*task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[taskToUpdate.ID]; !ok {
		return nil, nil
	}

	s.storage[taskToUpdate.ID] = taskToUpdate.Clone()
	return taskToUpdate.Clone(), nil
}

func (s *TaskStorage) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return false, nil
	}

	delete(s.storage, id)
	return true, nil
}
