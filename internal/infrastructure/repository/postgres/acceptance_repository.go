package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
	qb "github.com/riskibarqy/roadto100k/internal/platform/querybuilder"
)

type acceptanceInsertModel struct {
	UserID    string    `db:"user_id"`
	Year      int       `db:"year"`
	CreatedAt time.Time `db:"created_at"`
}

type AcceptanceRepository struct {
	db *sqlx.DB
}

func NewAcceptanceRepository(db *sqlx.DB) *AcceptanceRepository {
	return &AcceptanceRepository{db: db}
}

func (r *AcceptanceRepository) ListUserIDsByYear(ctx context.Context, year int) ([]string, error) {
	query, args, err := qb.Select("user_id").From("challenge_acceptances").
		Where(qb.Eq("year", year)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select challenge acceptances query: %w", err)
	}

	var userIDs []string
	if err := r.db.SelectContext(ctx, &userIDs, query, args...); err != nil {
		return nil, fmt.Errorf("select challenge acceptances: %w", err)
	}
	return userIDs, nil
}

func (r *AcceptanceRepository) Exists(ctx context.Context, userID string, year int) (bool, error) {
	query, args, err := qb.Select("1").From("challenge_acceptances").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("year", year),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build select challenge acceptance query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("select challenge acceptance: %w", err)
	}
	return true, nil
}

func (r *AcceptanceRepository) Accept(ctx context.Context, acceptance challenge.Acceptance) error {
	insertModel := acceptanceInsertModel{
		UserID:    acceptance.UserID,
		Year:      acceptance.Year,
		CreatedAt: acceptance.CreatedAt,
	}
	query, args, err := qb.InsertModel("challenge_acceptances", insertModel, "ON CONFLICT (user_id, year) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert challenge acceptance query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert challenge acceptance: %w", err)
	}
	return nil
}
