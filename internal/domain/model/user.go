package model

import (
	"errors"
	"time"
)

// User is an account holder. HashedPassword must never be serialized
// outward; API response types omit it.
type User struct {
	ID             string
	Email          string
	DisplayName    string
	HashedPassword string
	Disabled       bool
	CreatedAt      time.Time
}

// UserCreate carries registration input before hashing.
type UserCreate struct {
	Email       string
	DisplayName string
	Password    string
}

var (
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
)

func (c UserCreate) Validate() error {
	if c.Email == "" {
		return ErrEmptyEmail
	}
	if c.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}
