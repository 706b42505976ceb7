package user

import "context"

// Repository defines data access for users.
type Repository interface {
	// Create inserts a new user. Fails with ErrEmailExists or
	// ErrEmployeeCodeExists on uniqueness violations.
	Create(ctx context.Context, u User) (User, error)

	// GetByID retrieves a user by ID. Fails with ErrUserNotFound.
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email. Fails with ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (User, error)

	// FindAll retrieves every user, managers included. Used by the
	// absence sweep.
	FindAll(ctx context.Context) ([]User, error)

	// FindAllEmployees retrieves users with the EMPLOYEE role.
	FindAllEmployees(ctx context.Context) ([]User, error)

	// CountEmployees returns the number of EMPLOYEE users.
	CountEmployees(ctx context.Context) (int64, error)
}
