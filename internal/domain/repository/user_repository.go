package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Save(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	HasPermission(userID, permission string) (bool, error)
}
