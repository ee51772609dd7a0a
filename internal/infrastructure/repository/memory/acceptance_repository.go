package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
)

type acceptanceKey struct {
	userID string
	year   int
}

type AcceptanceRepository struct {
	mu     sync.RWMutex
	items  map[acceptanceKey]challenge.Acceptance
	orders []acceptanceKey
}

func NewAcceptanceRepository(acceptances []challenge.Acceptance) *AcceptanceRepository {
	r := &AcceptanceRepository{items: make(map[acceptanceKey]challenge.Acceptance, len(acceptances))}
	for _, a := range acceptances {
		r.put(a)
	}
	return r
}

func (r *AcceptanceRepository) ListUserIDsByYear(_ context.Context, year int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.orders))
	for _, key := range r.orders {
		if key.year == year {
			out = append(out, key.userID)
		}
	}
	return out, nil
}

func (r *AcceptanceRepository) Exists(_ context.Context, userID string, year int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[acceptanceKey{userID: userID, year: year}]
	return ok, nil
}

func (r *AcceptanceRepository) Accept(_ context.Context, acceptance challenge.Acceptance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(acceptance)
	return nil
}

// put keeps the first acceptance for a key.
func (r *AcceptanceRepository) put(a challenge.Acceptance) {
	key := acceptanceKey{userID: a.UserID, year: a.Year}
	if _, exists := r.items[key]; exists {
		return
	}
	r.items[key] = a
	r.orders = append(r.orders, key)
}
