package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Email is stored lower-cased and unique; PasswordHash is a bcrypt digest and
// never leaves the API.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	BirthDate    string
	CPF          int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
