package domain

import (
	"errors"
)

var (
	ErrStaffNotFound = errors.New("staff account not found")
	ErrStaffExists   = errors.New("username or email already registered")
)
