package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/models/task"
	"taskKeeper/internal/repository"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Storage — файловое SQLite-хранилище. Пул не держим: на каждую операцию
// открывается отдельное короткоживущее соединение (открыть, выполнить,
// зафиксировать или откатить, закрыть).
type Storage struct {
	path string
}

const createTableQuery = `CREATE TABLE IF NOT EXISTS tasks (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				status TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`

func New(ctx context.Context, dbPath string) (*Storage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("Repository: Не удалось создать каталог БД", err)
			return nil, fmt.Errorf("создание каталога БД: %w", err)
		}
	}

	s := &Storage{path: dbPath}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, createTableQuery); err != nil {
		logger.Error("Repository: Не удалось создать таблицу tasks", err)
		return nil, fmt.Errorf("создание таблицы tasks: %w", err)
	}

	logger.Info("Repository: Хранилище SQLite готово", zap.String("path", dbPath))
	return s, nil
}

func (s *Storage) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		logger.Error("Repository: Не удалось открыть соединение", err)
		return nil, fmt.Errorf("открытие соединения: %w", err)
	}
	return db, nil
}

var _ repository.TaskRepository = (*Storage)(nil)

func (s *Storage) Save(ctx context.Context, taskToSave *task.Task) error {
	start := time.Now()

	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("начало транзакции: %w", err)
	}

	fields := taskToSave.Serialize()
	query := `INSERT INTO tasks
				(id, title, status, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?)`

	_, err = tx.ExecContext(ctx, query,
		fields["id"],
		fields["title"],
		fields["status"],
		fields["created_at"],
		fields["updated_at"],
	)

	if err != nil {
		tx.Rollback()

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			logger.Warn("Repository: Повтор id при вставке",
				zap.String("task_id", taskToSave.ID.String()))
			return repository.ErrDuplicateID
		}

		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("фиксация транзакции: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) FindAll(ctx context.Context) ([]*task.Task, error) {
	start := time.Now()

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	// метки времени фиксированной ширины, текстовая сортировка == хронологическая
	query := `SELECT
				id,
				title,
				status,
				created_at,
				updated_at
				FROM tasks
				ORDER BY created_at DESC, id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	defer rows.Close()

	tasks := []*task.Task{}

	for rows.Next() {
		t, err := rowToTask(rows.Scan)
		if err != nil {
			logger.Error("Repository: Испорченная запись задачи", err)
			return nil, err
		}

		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return tasks, nil
}

func (s *Storage) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	start := time.Now()

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `SELECT
				id,
				title,
				status,
				created_at,
				updated_at
				FROM tasks
				WHERE id = ?`

	row := db.QueryRowContext(ctx, query, id.String())

	t, err := rowToTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, err
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return t, nil
}

func (s *Storage) Update(ctx context.Context, taskToUpdate *task.Task) (*task.Task, error) {
	start := time.Now()

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("начало транзакции: %w", err)
	}

	fields := taskToUpdate.Serialize()
	query := `UPDATE tasks
			SET title = ?,
				status = ?,
				updated_at = ?
			WHERE id = ?`

	res, err := tx.ExecContext(ctx, query,
		fields["title"],
		fields["status"],
		fields["updated_at"],
		fields["id"],
	)

	if err != nil {
		tx.Rollback()
		logger.Error("Repository: Не удалось обновить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("подсчёт обновлённых строк: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("фиксация транзакции: %w", err)
	}

	if affected == 0 {
		logger.Info("Repository: Обновление несуществующей задачи",
			zap.String("task_id", taskToUpdate.ID.String()))
		return nil, nil
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return taskToUpdate, nil
}

func (s *Storage) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	start := time.Now()

	db, err := s.open()
	if err != nil {
		return false, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("начало транзакции: %w", err)
	}

	query := `DELETE FROM tasks
				WHERE id = ?`

	res, err := tx.ExecContext(ctx, query, id.String())
	if err != nil {
		tx.Rollback()
		logger.Error("Repository: Не удалось удалить задачу", err, zap.Duration("ms", time.Since(start)))
		return false, fmt.Errorf("удаление задачи: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return false, fmt.Errorf("подсчёт удалённых строк: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("фиксация транзакции: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return affected > 0, nil
}

// rowToTask — восстановление задачи из строки таблицы; статус и метки
// времени заново проходят доменный разбор.
func rowToTask(scan func(dest ...any) error) (*task.Task, error) {
	var id, title, status, createdAt, updatedAt string

	if err := scan(&id, &title, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("сканирование строки: %w", err)
	}

	t, err := task.Deserialize(map[string]string{
		"id":         id,
		"title":      title,
		"status":     status,
		"created_at": createdAt,
		"updated_at": updatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("преобразование строки в задачу: %w", err)
	}

	return t, nil
}
