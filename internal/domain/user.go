package domain

// Role values carried in token claims
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserInfo is the identity decoded from a bearer token
type UserInfo struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the user carries the admin role
func (u UserInfo) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NewUserEvent is the payload of a user-created event consumed from the
// auth fact stream
type NewUserEvent struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
}
