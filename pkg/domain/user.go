package domain

// User is the non-credential identity of a Beanmart customer.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Name    string `json:"name,omitempty"`
	IsAdmin bool   `json:"is_admin,omitempty"`
	// Role is reported by the API but never consulted for authorization;
	// IsAdmin is the only admin signal.
	Role string `json:"role,omitempty"`
}

// DisplayName returns the user's name, falling back to the email address.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
