package domain

// Session is the persisted snapshot of who is logged in.
//
// IsAuthenticated and IsAdmin are derived from User and Token; use
// Normalize after decoding a snapshot from storage.
type Session struct {
	User            *User  `json:"user"`
	Token           string `json:"token"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsAdmin         bool   `json:"isAdmin"`
}

// Anonymous reports whether the snapshot carries neither identity nor token.
func (s Session) Anonymous() bool {
	return s.User == nil && s.Token == ""
}

// Normalize recomputes the derived flags from User and Token.
func (s Session) Normalize() Session {
	s.IsAuthenticated = s.User != nil && s.Token != ""
	s.IsAdmin = s.User != nil && s.User.IsAdmin
	return s
}

// Clone returns a copy of s that shares no memory with it.
func (s Session) Clone() Session {
	s.User = s.User.Clone()
	return s
}
