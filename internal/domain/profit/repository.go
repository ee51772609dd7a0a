package profit

import "context"

type Repository interface {
	// List returns matching entries ordered by RecordedAt ascending.
	List(ctx context.Context, filter Filter) ([]Entry, error)
	Append(ctx context.Context, entry Entry) error
}
