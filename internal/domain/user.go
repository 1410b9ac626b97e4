package domain

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsStaff      bool
	CreatedAt    time.Time
}

// Identity is the principal behind a request. The zero value is anonymous.
type Identity struct {
	UserID  int64
	Email   string
	IsStaff bool
}

func (i Identity) Authenticated() bool {
	return i.UserID != 0
}

func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Email: u.Email, IsStaff: u.IsStaff}
}
