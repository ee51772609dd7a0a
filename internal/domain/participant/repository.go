package participant

import "context"

type Repository interface {
	// List returns every participant ordered by CreatedAt ascending.
	List(ctx context.Context) ([]Participant, error)
	GetByUserID(ctx context.Context, userID string) (Participant, bool, error)
	// Create returns ErrAlreadyExists when the user already owns a participant.
	Create(ctx context.Context, p Participant) error
}
