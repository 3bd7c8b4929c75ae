package domain

import "time"

// UserRole is the administrative role of a user account.
type UserRole string

const (
	RoleAdministrator UserRole = "Administrator"
	RoleEditor        UserRole = "Editor"
	RoleAuthor        UserRole = "Author"
	RoleSubscriber    UserRole = "Subscriber"
)

// UserStatus marks whether an account may sign in.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User represents a managed user account.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      UserRole   `json:"role"`
	Avatar    string     `json:"avatar,omitempty"`
	Status    UserStatus `json:"status"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ValidRoles contains all valid user roles.
var ValidRoles = []UserRole{RoleAdministrator, RoleEditor, RoleAuthor, RoleSubscriber}

// ValidUserStatuses contains all valid user statuses.
var ValidUserStatuses = []UserStatus{UserStatusActive, UserStatusInactive}

// IsValidRole checks if a role is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if string(r) == role {
			return true
		}
	}
	return false
}

// IsValidUserStatus checks if a user status is valid.
func IsValidUserStatus(status string) bool {
	for _, s := range ValidUserStatuses {
		if string(s) == status {
			return true
		}
	}
	return false
}
