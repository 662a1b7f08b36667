package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const StatusPending Status = "pending"
const StatusDone Status = "done"

// TimeLayout — текстовый формат меток времени: дата, время и смещение UTC.
// Фиксированная ширина дробной части, поэтому лексикографический порядок
// строк совпадает с хронологическим.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type Task struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Status    Status    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidationError — ошибка бизнес-валидации полей задачи.
// Возникает только там, где «сырые» строки входят в домен.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("неверное значение поля '%s': %s", e.Field, e.Reason)
}

// ParseStatus — единственная точка превращения строки в Status.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusDone:
		return Status(raw), nil
	default:
		return "", &ValidationError{
			Field:  "status",
			Reason: fmt.Sprintf("допустимы только '%s' и '%s', получено '%s'", StatusPending, StatusDone, raw),
		}
	}
}

// New — фабрика задачи. Пустой status означает pending.
func New(title string, status string) (*Task, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, &ValidationError{Field: "title", Reason: "название не может быть пустым"}
	}

	st := StatusPending
	if status != "" {
		parsed, err := ParseStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}

	now := time.Now().UTC()
	return &Task{
		ID:        uuid.New(),
		Title:     trimmed,
		Status:    st,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (t *Task) UpdateTitle(newTitle string) error {
	trimmed := strings.TrimSpace(newTitle)
	if trimmed == "" {
		return &ValidationError{Field: "title", Reason: "название не может быть пустым"}
	}

	t.Title = trimmed
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (t *Task) UpdateStatus(newStatus string) error {
	parsed, err := ParseStatus(newStatus)
	if err != nil {
		return err
	}

	t.Status = parsed
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Serialize — плоское представление всех пяти полей,
// метки времени в формате TimeLayout.
func (t *Task) Serialize() map[string]string {
	return map[string]string{
		"id":         t.ID.String(),
		"title":      t.Title,
		"status":     string(t.Status),
		"created_at": t.CreatedAt.Format(TimeLayout),
		"updated_at": t.UpdatedAt.Format(TimeLayout),
	}
}

// Deserialize — обратное преобразование. Испорченный status или метка
// времени — это ошибка данных, о которой сообщаем сразу.
func Deserialize(fields map[string]string) (*Task, error) {
	id, err := uuid.Parse(fields["id"])
	if err != nil {
		return nil, fmt.Errorf("разбор id: %w", err)
	}

	status, err := ParseStatus(fields["status"])
	if err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(TimeLayout, fields["created_at"])
	if err != nil {
		return nil, fmt.Errorf("разбор created_at: %w", err)
	}

	updatedAt, err := time.Parse(TimeLayout, fields["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("разбор updated_at: %w", err)
	}

	return &Task{
		ID:        id,
		Title:     fields["title"],
		Status:    status,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}, nil
}

// Clone — независимая копия; хранилище остаётся единственным
// источником истины между вызовами.
func (t *Task) Clone() *Task {
	copied := *t
	return &copied
}
