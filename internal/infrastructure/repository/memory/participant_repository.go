package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/roadto100k/internal/domain/participant"
)

type ParticipantRepository struct {
	mu       sync.RWMutex
	byUserID map[string]participant.Participant
	orders   []string
}

func NewParticipantRepository(participants []participant.Participant) *ParticipantRepository {
	sorted := append([]participant.Participant(nil), participants...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	byUserID := make(map[string]participant.Participant, len(sorted))
	orders := make([]string, 0, len(sorted))
	for _, p := range sorted {
		if _, exists := byUserID[p.UserID]; exists {
			continue
		}
		byUserID[p.UserID] = p
		orders = append(orders, p.UserID)
	}

	return &ParticipantRepository{
		byUserID: byUserID,
		orders:   orders,
	}
}

func (r *ParticipantRepository) List(_ context.Context) ([]participant.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]participant.Participant, 0, len(r.orders))
	for _, userID := range r.orders {
		out = append(out, r.byUserID[userID])
	}

	return out, nil
}

func (r *ParticipantRepository) GetByUserID(_ context.Context, userID string) (participant.Participant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUserID[userID]
	if !ok {
		return participant.Participant{}, false, nil
	}

	return p, true, nil
}

// Create appends in call order, which keeps List sorted as long as CreatedAt comes from one clock.
func (r *ParticipantRepository) Create(_ context.Context, p participant.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUserID[p.UserID]; exists {
		return fmt.Errorf("%w: user %s", participant.ErrAlreadyExists, p.UserID)
	}
	r.byUserID[p.UserID] = p
	r.orders = append(r.orders, p.UserID)

	return nil
}
