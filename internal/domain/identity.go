package domain

// Identity is the authenticated caller as asserted by the auth layer in front
// of the service
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Anonymous reports whether no user is attached
func (i Identity) Anonymous() bool {
	return i.UserID == ""
}
