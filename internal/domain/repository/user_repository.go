package repository

import "github.com/tu-usuario/agregados-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para operadores.
type UserRepository interface {
	Create(user *entity.User) error
	FindByEmail(email string) (*entity.User, error)
}
