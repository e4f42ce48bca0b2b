package http

import (
	"net/http"
	"time"

	"github.com/smallie/smallie/internal/core/ports"
	"github.com/smallie/smallie/internal/core/schedule"
)

type TaskHandler struct {
	tasks  ports.TaskService
	window schedule.Window
	now    func() time.Time
}

func NewTaskHandler(tasks ports.TaskService, window schedule.Window) *TaskHandler {
	return &TaskHandler{
		tasks:  tasks,
		window: window,
		now:    time.Now,
	}
}

// Schedule feeds the countdown/task widget: digits until voting closes,
// progress since the task release, and today's resolved task. The page
// polls this on a fixed cadence.
func (h *TaskHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	day, task := h.tasks.Current(r.Context(), now)

	writeJSON(w, http.StatusOK, map[string]any{
		"countdown": h.window.ClosingCountdown(now),
		"progress":  h.window.ElapsedFraction(now),
		"day":       day,
		"task":      task,
	})
}
