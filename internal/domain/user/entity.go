package user

import "time"

type Role string

const (
	RoleEmployee Role = "EMPLOYEE" // Regular employee
	RoleManager  Role = "MANAGER"  // Can approve late arrivals, query across users
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	EmployeeCode string
	Role         Role
	Department   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsManager checks if the user holds the manager role.
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}
