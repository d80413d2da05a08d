package entity

import "time"

// RoleModerator may change a resource's moderation status
const RoleModerator = "moderator"

// Role represents an authorization role
// Many-to-many with User via user_roles
type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
