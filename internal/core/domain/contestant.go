package domain

import "time"

type Contestant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Bio        string    `json:"bio,omitempty"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	Votes      int64     `json:"votes"`
	Eliminated bool      `json:"eliminated"`
	CreatedAt  time.Time `json:"created_at"`
}

// Tally is the running vote total for one contestant. It is only ever
// mutated through an atomic server-side increment; the client never
// reads-then-writes it.
type Tally struct {
	ContestantID string `json:"contestant_id"`
	Votes        int64  `json:"votes"`
	Eliminated   bool   `json:"eliminated"`
}
