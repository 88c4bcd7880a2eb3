package entity

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Plan         string
	MessageCount int
	MessageLimit int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Admitted reports whether the account may process one more message.
func (a *Account) Admitted() bool {
	return a.MessageCount < a.MessageLimit
}
