package services

import (
	"sync"

	"github.com/smallie/smallie/internal/core/domain"
)

// Directory is the locally held contestant snapshot the voting affordances
// consult. The eliminated check on the one-click path reads this snapshot,
// never the store; commits update it in place so the UI reflects new
// tallies immediately.
type Directory struct {
	mu    sync.RWMutex
	byID  map[string]domain.Tally
	names map[string]string
}

func NewDirectory() *Directory {
	return &Directory{
		byID:  make(map[string]domain.Tally),
		names: make(map[string]string),
	}
}

func (d *Directory) Update(c *domain.Contestant) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byID[c.ID] = domain.Tally{ContestantID: c.ID, Votes: c.Votes, Eliminated: c.Eliminated}
	d.names[c.ID] = c.Name
}

// ApplyVotes folds a committed count into the snapshot.
func (d *Directory) ApplyVotes(contestantID string, delta int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.byID[contestantID]
	if !ok {
		return
	}
	t.Votes += delta
	d.byID[contestantID] = t
}

func (d *Directory) Snapshot(contestantID string) (name string, tally domain.Tally, ok bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	tally, ok = d.byID[contestantID]
	return d.names[contestantID], tally, ok
}
