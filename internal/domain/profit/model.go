package profit

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one immutable dated contribution. Amount may be negative.
type Entry struct {
	ID            string
	ParticipantID string
	Amount        decimal.Decimal
	RecordedAt    time.Time
	CreatedAt     time.Time
}

// Filter narrows List. Zero values leave the corresponding bound open; From and To are inclusive.
type Filter struct {
	ParticipantID string
	From          time.Time
	To            time.Time
}

func (f Filter) Match(e Entry) bool {
	if f.ParticipantID != "" && e.ParticipantID != f.ParticipantID {
		return false
	}
	if !f.From.IsZero() && e.RecordedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.RecordedAt.After(f.To) {
		return false
	}
	return true
}
