package models

import "time"

// User is a stored account. PasswordHash is a bcrypt hash and is never
// serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsSuperuser  bool      `json:"is_superuser"`
	Roles        []Role    `json:"roles"`
	CreatedOn    time.Time `json:"created_on"`
}

// Principal derives the request-scoped identity for this user.
func (u *User) Principal() *Principal {
	return &Principal{
		UserID:      u.ID,
		IsSuperuser: u.IsSuperuser,
		Roles:       u.Roles,
	}
}
