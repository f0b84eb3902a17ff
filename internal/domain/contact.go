package domain

// Contact is an emergency contact notified during surges
type Contact struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required,max=200"`
	Role  string `json:"role" validate:"required,max=100"`
	Phone string `json:"phone" validate:"required,e164"`
}
