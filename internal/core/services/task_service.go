package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/smallie/smallie/internal/core/domain"
	"github.com/smallie/smallie/internal/core/ports"
	"github.com/smallie/smallie/internal/core/schedule"
)

// staticTasks is the built-in seven-day schedule used when the store has no
// row for a day or cannot be reached.
var staticTasks = []domain.TaskDescriptor{
	{Day: 1, Title: "Naija Throwback Dance Challenge", Description: "60-second dance to a classic hit (e.g., P-Square)"},
	{Day: 2, Title: "Jollof Wars: Cook-Off Edition", Description: "Cook jollof with ₦500 in 10 minutes, taste it"},
	{Day: 3, Title: "Music & Dance Performance", Description: "2-minute performance of a trending Naija hit"},
	{Day: 4, Title: "Afrobeat Freestyle Face-Off", Description: "1-minute freestyle on a trending beat (e.g., Burna Boy)"},
	{Day: 5, Title: "Owambe Fashion Flex", Description: "Style an owambe outfit from home, 90-second catwalk"},
	{Day: 6, Title: "Pidgin Proverbs Remix", Description: "60-second pidgin skit/song from a proverb"},
	{Day: 7, Title: "Lagos Hustle Pitch", Description: "3-minute pitch as Smallie winner"},
}

var placeholderTask = domain.TaskDescriptor{
	Title:       "No task available",
	Description: "Check back later",
}

type taskService struct {
	repo   ports.TaskRepository
	window schedule.Window
	log    *slog.Logger
}

func NewTaskService(repo ports.TaskRepository, window schedule.Window, log *slog.Logger) ports.TaskService {
	return &taskService{
		repo:   repo,
		window: window,
		log:    log,
	}
}

func (s *taskService) Current(ctx context.Context, now time.Time) (int, domain.TaskDescriptor) {
	day, ok := s.window.DayIndex(now)
	return day, s.Resolve(ctx, day, ok)
}

// Resolve is deterministic for a given day: store row if one exists,
// otherwise the static table, otherwise the placeholder. Lookup failures
// degrade to the static table rather than propagating.
func (s *taskService) Resolve(ctx context.Context, day int, ok bool) domain.TaskDescriptor {
	if !ok {
		return placeholderTask
	}

	task, err := s.repo.GetByDay(ctx, day)
	if err != nil {
		if !errors.Is(err, domain.ErrTaskNotFound) {
			s.log.Error("task lookup failed, using static table", "day", day, "error", err)
		}
		return s.static(day)
	}

	resolved := *task
	if resolved.ScheduledDate.IsZero() {
		resolved.ScheduledDate = s.window.ScheduledDate(day)
	}
	return resolved
}

func (s *taskService) static(day int) domain.TaskDescriptor {
	if day < 1 || day > len(staticTasks) {
		return placeholderTask
	}
	task := staticTasks[day-1]
	task.ScheduledDate = s.window.ScheduledDate(day)
	return task
}

// StaticTasks exposes the built-in schedule for the seed job.
func StaticTasks(window schedule.Window) []domain.TaskDescriptor {
	tasks := make([]domain.TaskDescriptor, len(staticTasks))
	for i, t := range staticTasks {
		t.ScheduledDate = window.ScheduledDate(t.Day)
		tasks[i] = t
	}
	return tasks
}
