package domain

import "time"

// TaskDescriptor describes the daily task shown next to the voting
// countdown. Day runs 1..7 within the competition window; Day 0 marks the
// placeholder shown outside it.
type TaskDescriptor struct {
	Day           int       `json:"day"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ScheduledDate time.Time `json:"scheduled_date,omitempty"`
}
