package domain

import "time"

const RoleAdmin = "admin"

// Admin is an administrator account. PasswordHash never leaves the process
// as JSON and is always a bcrypt hash once persisted.
type Admin struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AdminChanges is the set of stored fields an update touches. Nil fields are
// left as they are; PasswordHash is only ever set by the admin service.
type AdminChanges struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// ApplyTo copies the changed fields onto a.
func (c AdminChanges) ApplyTo(a *Admin) {
	if c.Name != nil {
		a.Name = *c.Name
	}
	if c.Email != nil {
		a.Email = *c.Email
	}
	if c.PasswordHash != nil {
		a.PasswordHash = *c.PasswordHash
	}
}

// Sanitized returns a copy of the admin without the password hash.
func (a Admin) Sanitized() *Admin {
	a.PasswordHash = ""
	return &a
}
