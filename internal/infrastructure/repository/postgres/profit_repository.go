package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/roadto100k/internal/domain/profit"
	qb "github.com/riskibarqy/roadto100k/internal/platform/querybuilder"
)

type ProfitRepository struct {
	db *sqlx.DB
}

func NewProfitRepository(db *sqlx.DB) *ProfitRepository {
	return &ProfitRepository{db: db}
}

func (r *ProfitRepository) List(ctx context.Context, filter profit.Filter) ([]profit.Entry, error) {
	query, args, err := qb.Select("*").From("profit_entries").
		Where(filterConditions(filter)...).
		OrderBy("recorded_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select profit entries query: %w", err)
	}

	var rows []profitEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select profit entries: %w", err)
	}

	out := make([]profit.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *ProfitRepository) Append(ctx context.Context, entry profit.Entry) error {
	insertModel := profitEntryInsertModel{
		PublicID:            entry.ID,
		ParticipantPublicID: entry.ParticipantID,
		Amount:              entry.Amount,
		RecordedAt:          entry.RecordedAt,
		CreatedAt:           entry.CreatedAt,
	}
	query, args, err := qb.InsertModel("profit_entries", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert profit entry query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert profit entry: %w", err)
	}
	return nil
}

func filterConditions(filter profit.Filter) []qb.Condition {
	var conds []qb.Condition
	if filter.ParticipantID != "" {
		conds = append(conds, qb.Eq("participant_public_id", filter.ParticipantID))
	}
	if !filter.From.IsZero() {
		conds = append(conds, qb.Gte("recorded_at", filter.From))
	}
	if !filter.To.IsZero() {
		conds = append(conds, qb.Lte("recorded_at", filter.To))
	}
	return conds
}
