package services

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/meetrec/internal/client/lifecycle"
	"github.com/dmitrijs2005/meetrec/internal/client/models"
)

// Roster is the last successfully fetched job list. It is only ever
// replaced as a whole; readers get copies.
type Roster struct {
	mu        sync.RWMutex
	jobs      []models.Job
	fetchedAt time.Time
	version   uint64
}

// Replace swaps in a freshly fetched list.
func (r *Roster) Replace(jobs []models.Job, at time.Time) {
	cp := append([]models.Job(nil), jobs...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = cp
	r.fetchedAt = at
	r.version++
}

// Reset forgets the list, as if nothing had been fetched yet. Used when the
// session that fetched it ends.
func (r *Roster) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = nil
	r.fetchedAt = time.Time{}
	r.version = 0
}

// Jobs returns the roster in fetch order.
func (r *Roster) Jobs() []models.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Job(nil), r.jobs...)
}

// Views renders the roster most recent first.
func (r *Roster) Views() []lifecycle.View {
	return lifecycle.RenderRoster(r.Jobs())
}

// FetchedAt is the time of the last successful fetch, zero before the first.
func (r *Roster) FetchedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fetchedAt
}

// Version increases with every Replace and is zero until the first fetch
// or after a Reset.
func (r *Roster) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}
