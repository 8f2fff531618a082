package models

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole accepts only the known roles, so a typo can never
// produce a role that some check would treat as privileged.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("invalid role: %q", s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

const (
	UserNameMinLength = 2
	UserNameMaxLength = 50
)

type User struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	Role      Role       `json:"role"`
	IsActive  bool       `json:"isActive"`
	Avatar    string     `json:"avatar"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// UserFilter narrows account listings. A nil Active matches every account.
type UserFilter struct {
	Active *bool
}

type UserStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	ActiveUsers   int64 `json:"activeUsers"`
	InactiveUsers int64 `json:"inactiveUsers"`
	AdminUsers    int64 `json:"adminUsers"`
	RecentUsers   int64 `json:"recentUsers"`
}
