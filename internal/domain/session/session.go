package session

import "folkify/internal/domain/users"

// Session is the authenticated actor for one request. It is built once by the
// auth middleware and passed to whatever needs the caller's identity.
type Session struct {
	UserID string
	Email  string
	Role   string
}

func (s Session) Authenticated() bool {
	return s.UserID != ""
}

func (s Session) IsArtist() bool {
	return s.Role == users.RoleArtist
}

// Owns reports whether the actor is the given user or artist.
func (s Session) Owns(userID string) bool {
	return s.Authenticated() && s.UserID == userID
}
