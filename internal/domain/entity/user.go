package entity

import "time"

// User representa un operador del sistema con acceso a las mutaciones de stock.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	CreatedAt    time.Time
}
