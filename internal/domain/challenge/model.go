package challenge

import "time"

// Acceptance records that a user opted into the challenge for a year.
type Acceptance struct {
	UserID    string
	Year      int
	CreatedAt time.Time
}
