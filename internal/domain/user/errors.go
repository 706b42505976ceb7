package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailExists           = errors.New("email already registered")
	ErrEmployeeCodeExists    = errors.New("employee code already registered")
	ErrManagerAccessRequired = errors.New("manager access required")
)
