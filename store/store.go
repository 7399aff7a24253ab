package store

import (
	"errors"

	"userportal/model"
)

// ErrUserNotFound is returned by FindUserByCredentials when no record
// matches the submitted pair. Callers must not distinguish an unknown
// username from a wrong password.
var ErrUserNotFound = errors.New("user not found")

type IStore interface {
	Init() error
	GetUsers() ([]model.User, error)
	FindUserByCredentials(username string, password string) (model.User, error)
	SaveUser(user model.User) (model.User, error)
	DeleteUser(id string) error
}
