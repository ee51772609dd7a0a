package user

// Principal is the verified identity attached to an authenticated request.
type Principal struct {
	UserID    string
	Email     string
	Name      string
	AvatarURL string
}
