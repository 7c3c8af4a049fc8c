package domain

import "time"

// Seeded role names.
const (
	RoleUser      = "USER"
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
)

type Role struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
