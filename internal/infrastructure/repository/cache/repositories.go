package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
	"github.com/riskibarqy/roadto100k/internal/domain/participant"
	"github.com/riskibarqy/roadto100k/internal/domain/profit"
	basecache "github.com/riskibarqy/roadto100k/internal/platform/cache"
)

const (
	participantPrefix = "participant:"
	acceptancePrefix  = "acceptance:"
	profitPrefix      = "profit:"
)

type ParticipantRepository struct {
	next  participant.Repository
	cache *basecache.Store
}

func NewParticipantRepository(next participant.Repository, cache *basecache.Store) *ParticipantRepository {
	return &ParticipantRepository{next: next, cache: cache}
}

func (r *ParticipantRepository) List(ctx context.Context) ([]participant.Participant, error) {
	v, err := r.cache.GetOrLoad(ctx, participantPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]participant.Participant(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]participant.Participant)
	return append([]participant.Participant(nil), items...), nil
}

func (r *ParticipantRepository) GetByUserID(ctx context.Context, userID string) (participant.Participant, bool, error) {
	key := participantPrefix + "user:" + userID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return cachedParticipant{value: item, exists: exists}, nil
	})
	if err != nil {
		return participant.Participant{}, false, err
	}

	cached, _ := v.(cachedParticipant)
	return cached.value, cached.exists, nil
}

func (r *ParticipantRepository) Create(ctx context.Context, p participant.Participant) error {
	if err := r.next.Create(ctx, p); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, participantPrefix)
	return nil
}

type cachedParticipant struct {
	value  participant.Participant
	exists bool
}

type ProfitRepository struct {
	next  profit.Repository
	cache *basecache.Store
}

func NewProfitRepository(next profit.Repository, cache *basecache.Store) *ProfitRepository {
	return &ProfitRepository{next: next, cache: cache}
}

func (r *ProfitRepository) List(ctx context.Context, filter profit.Filter) ([]profit.Entry, error) {
	key := profitPrefix + "list:" + filterKey(filter)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]profit.Entry(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]profit.Entry)
	return append([]profit.Entry(nil), items...), nil
}

// Append drops every cached listing since any filter may now include the new entry.
func (r *ProfitRepository) Append(ctx context.Context, entry profit.Entry) error {
	if err := r.next.Append(ctx, entry); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, profitPrefix)
	return nil
}

func filterKey(filter profit.Filter) string {
	return strings.Join([]string{
		filter.ParticipantID,
		timeKey(filter.From),
		timeKey(filter.To),
	}, "|")
}

func timeKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.FormatInt(t.UnixNano(), 10)
}

type AcceptanceRepository struct {
	next  challenge.AcceptanceRepository
	cache *basecache.Store
}

func NewAcceptanceRepository(next challenge.AcceptanceRepository, cache *basecache.Store) *AcceptanceRepository {
	return &AcceptanceRepository{next: next, cache: cache}
}

func (r *AcceptanceRepository) ListUserIDsByYear(ctx context.Context, year int) ([]string, error) {
	key := acceptancePrefix + "year:" + strconv.Itoa(year)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		ids, err := r.next.ListUserIDsByYear(ctx, year)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), ids...), nil
	})
	if err != nil {
		return nil, err
	}

	ids, _ := v.([]string)
	return append([]string(nil), ids...), nil
}

func (r *AcceptanceRepository) Exists(ctx context.Context, userID string, year int) (bool, error) {
	key := acceptancePrefix + "exists:" + strconv.Itoa(year) + ":" + userID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return r.next.Exists(ctx, userID, year)
	})
	if err != nil {
		return false, err
	}

	exists, _ := v.(bool)
	return exists, nil
}

func (r *AcceptanceRepository) Accept(ctx context.Context, acceptance challenge.Acceptance) error {
	if err := r.next.Accept(ctx, acceptance); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, acceptancePrefix)
	return nil
}
