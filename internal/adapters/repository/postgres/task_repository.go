package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/smallie/smallie/internal/core/domain"
	"github.com/smallie/smallie/internal/core/ports"
)

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) ports.TaskRepository {
	return &taskRepository{
		db: db,
	}
}

func (r *taskRepository) GetByDay(ctx context.Context, day int) (*domain.TaskDescriptor, error) {
	query := `
		SELECT day, title, description, scheduled_date
		FROM tasks
		WHERE day = $1
	`
	var t domain.TaskDescriptor
	var scheduled sql.NullTime
	err := r.db.QueryRowContext(ctx, query, day).Scan(&t.Day, &t.Title, &t.Description, &scheduled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task for day %d: %w", day, err)
	}
	if scheduled.Valid {
		t.ScheduledDate = scheduled.Time
	}
	return &t, nil
}

func (r *taskRepository) Save(ctx context.Context, task *domain.TaskDescriptor) error {
	query := `
		INSERT INTO tasks (day, title, description, scheduled_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (day) DO UPDATE
		SET title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    scheduled_date = EXCLUDED.scheduled_date
	`
	_, err := r.db.ExecContext(ctx, query, task.Day, task.Title, task.Description, task.ScheduledDate)
	if err != nil {
		return fmt.Errorf("failed to save task for day %d: %w", task.Day, err)
	}
	return nil
}
