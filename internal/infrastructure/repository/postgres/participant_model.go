package postgres

import (
	"time"

	"github.com/riskibarqy/roadto100k/internal/domain/participant"
)

type participantTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	UserID    string     `db:"user_id"`
	Name      string     `db:"name"`
	AvatarURL string     `db:"avatar_url"`
	Color     string     `db:"color"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type participantInsertModel struct {
	PublicID  string    `db:"public_id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	AvatarURL string    `db:"avatar_url"`
	Color     string    `db:"color"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m participantTableModel) toDomain() participant.Participant {
	return participant.Participant{
		ID:        m.PublicID,
		UserID:    m.UserID,
		Name:      m.Name,
		AvatarURL: m.AvatarURL,
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
	}
}
