package participant

import (
	"errors"
	"time"
)

var ErrAlreadyExists = errors.New("participant already exists")

// Participant is one identity competing in the challenge. A user owns at most one.
type Participant struct {
	ID        string
	UserID    string
	Name      string
	AvatarURL string
	Color     string
	CreatedAt time.Time
}
