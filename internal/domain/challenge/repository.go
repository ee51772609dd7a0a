package challenge

import "context"

type AcceptanceRepository interface {
	ListUserIDsByYear(ctx context.Context, year int) ([]string, error)
	Exists(ctx context.Context, userID string, year int) (bool, error)
	// Accept is idempotent per (UserID, Year).
	Accept(ctx context.Context, acceptance Acceptance) error
}
