package entity

import "time"

// Estados de usuario.
const (
	UserStatusActive = "active"
)

// User usuario del sistema. Solo se lee: la gestión de usuarios es externa.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor identidad autenticada que ejecuta una operación.
type Actor struct {
	ID   int64
	Name string
}
