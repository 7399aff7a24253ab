// Package jsondb provides a file-based storage backend, used for running
// without a MySQL server and by the tests.
package jsondb

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/rs/xid"
	"github.com/sdomino/scribble"

	"userportal/model"
	"userportal/store"
	"userportal/util"
)

type JsonDB struct {
	conn   *scribble.Driver
	dbPath string
}

// New returns a new pointer JsonDB
func New(dbPath string) (*JsonDB, error) {
	conn, err := scribble.New(dbPath, nil)
	if err != nil {
		return nil, err
	}
	ans := JsonDB{
		conn:   conn,
		dbPath: dbPath,
	}
	return &ans, nil
}

func (o *JsonDB) Init() error {
	var usersPath string = path.Join(o.dbPath, "users")

	// create directories if they do not exist
	if _, err := os.Stat(usersPath); os.IsNotExist(err) {
		os.MkdirAll(usersPath, os.ModePerm)
	}

	// seed the first login credential
	results, err := o.conn.ReadAll("users")
	if err != nil || len(results) < 1 {
		user := model.User{
			ID:       xid.New().String(),
			Username: util.LookupEnvOrString(util.UsernameEnvVar, util.DefaultUsername),
			Password: util.LookupEnvOrString(util.PasswordEnvVar, util.DefaultPassword),
		}
		o.conn.Write("users", user.ID, user)
	}

	return nil
}

// GetUsers func to get all user records from the database
func (o *JsonDB) GetUsers() ([]model.User, error) {
	var users []model.User
	results, err := o.conn.ReadAll("users")
	if err != nil {
		return users, err
	}
	for _, i := range results {
		user := model.User{}

		if err := json.Unmarshal([]byte(i), &user); err != nil {
			return users, fmt.Errorf("cannot decode user json structure: %v", err)
		}
		users = append(users, user)
	}
	return users, nil
}

// FindUserByCredentials func to get the user record matching both submitted
// fields exactly. Comparison is case-sensitive on both fields at once.
func (o *JsonDB) FindUserByCredentials(username string, password string) (model.User, error) {
	users, err := o.GetUsers()
	if err != nil {
		return model.User{}, err
	}

	for _, user := range users {
		if user.Username == username && user.Password == password {
			return user, nil
		}
	}
	return model.User{}, store.ErrUserNotFound
}

// SaveUser func to save a user record in the database. A missing id is
// generated server-side; duplicate usernames are not rejected.
func (o *JsonDB) SaveUser(user model.User) (model.User, error) {
	if user.ID == "" {
		user.ID = xid.New().String()
	}
	return user, o.conn.Write("users", user.ID, user)
}

// DeleteUser func to remove a user record from the database. Deleting an
// id that does not exist is not an error, it affected zero records.
func (o *JsonDB) DeleteUser(id string) error {
	user := model.User{}
	if err := o.conn.Read("users", id, &user); err != nil {
		return nil
	}
	return o.conn.Delete("users", id)
}

func (o *JsonDB) GetPath() string {
	return o.dbPath
}
