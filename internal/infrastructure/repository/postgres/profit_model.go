package postgres

import (
	"time"

	"github.com/riskibarqy/roadto100k/internal/domain/profit"
	"github.com/shopspring/decimal"
)

type profitEntryTableModel struct {
	ID                  int64           `db:"id"`
	PublicID            string          `db:"public_id"`
	ParticipantPublicID string          `db:"participant_public_id"`
	Amount              decimal.Decimal `db:"amount"`
	RecordedAt          time.Time       `db:"recorded_at"`
	CreatedAt           time.Time       `db:"created_at"`
}

type profitEntryInsertModel struct {
	PublicID            string          `db:"public_id"`
	ParticipantPublicID string          `db:"participant_public_id"`
	Amount              decimal.Decimal `db:"amount"`
	RecordedAt          time.Time       `db:"recorded_at"`
	CreatedAt           time.Time       `db:"created_at"`
}

func (m profitEntryTableModel) toDomain() profit.Entry {
	return profit.Entry{
		ID:            m.PublicID,
		ParticipantID: m.ParticipantPublicID,
		Amount:        m.Amount,
		RecordedAt:    m.RecordedAt,
		CreatedAt:     m.CreatedAt,
	}
}
