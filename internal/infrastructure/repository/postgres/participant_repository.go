package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/roadto100k/internal/domain/participant"
	qb "github.com/riskibarqy/roadto100k/internal/platform/querybuilder"
)

type ParticipantRepository struct {
	db *sqlx.DB
}

func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) List(ctx context.Context) ([]participant.Participant, error) {
	query, args, err := qb.Select("*").From("participants").
		Where(qb.IsNull("deleted_at")).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select participants query: %w", err)
	}

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select participants: %w", err)
	}

	out := make([]participant.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *ParticipantRepository) GetByUserID(ctx context.Context, userID string) (participant.Participant, bool, error) {
	query, args, err := qb.Select("*").From("participants").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return participant.Participant{}, false, fmt.Errorf("build select participant by user query: %w", err)
	}

	var row participantTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return participant.Participant{}, false, nil
		}
		return participant.Participant{}, false, fmt.Errorf("select participant by user: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *ParticipantRepository) Create(ctx context.Context, p participant.Participant) error {
	insertModel := participantInsertModel{
		PublicID:  p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		AvatarURL: p.AvatarURL,
		Color:     p.Color,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.CreatedAt,
	}
	query, args, err := qb.InsertModel("participants", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert participant query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user %s", participant.ErrAlreadyExists, p.UserID)
		}
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}
