package ports

import (
	"context"
	"time"

	"github.com/smallie/smallie/internal/core/domain"
)

type TaskRepository interface {
	// GetByDay looks a task up by its day index; a zero-match lookup
	// returns domain.ErrTaskNotFound.
	GetByDay(ctx context.Context, day int) (*domain.TaskDescriptor, error)
	Save(ctx context.Context, task *domain.TaskDescriptor) error
}

type TaskService interface {
	// Resolve falls back remote lookup -> static table -> placeholder.
	// ok=false (no active competition day) yields the placeholder.
	Resolve(ctx context.Context, day int, ok bool) domain.TaskDescriptor
	// Current resolves today's task; day is 0 outside the competition.
	Current(ctx context.Context, now time.Time) (day int, task domain.TaskDescriptor)
}
