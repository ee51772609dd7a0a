package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/roadto100k/internal/domain/profit"
)

type ProfitRepository struct {
	mu      sync.RWMutex
	entries []profit.Entry
}

func NewProfitRepository(entries []profit.Entry) *ProfitRepository {
	return &ProfitRepository{entries: append([]profit.Entry(nil), entries...)}
}

func (r *ProfitRepository) List(_ context.Context, filter profit.Filter) ([]profit.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profit.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if filter.Match(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.Before(out[j].RecordedAt)
	})

	return out, nil
}

func (r *ProfitRepository) Append(_ context.Context, entry profit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	return nil
}
