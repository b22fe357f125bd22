package entity

import "time"

// Customer es un comprador registrado (solo auto-registro).
type Customer struct {
	ID           int64
	Email        string // único, comparación exacta (case-sensitive)
	FullName     string
	PasswordHash string // bcrypt, obligatorio
	IsActive     bool
	CreatedAt    time.Time
}
