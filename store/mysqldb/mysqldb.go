// Package mysqldb provides a MySQL storage backend for the user portal
package mysqldb

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"userportal/model"
	"userportal/store"
	"userportal/util"
)

//go:embed schema.sql
var schema string

// MySQLDB - Representation of MySQL database backend
type MySQLDB struct {
	conn   *sql.DB
	dbName string
}

// New returns pointer to MySQL database
func New(uname string, pwd string, host string, port int, database string, tls bool) (*MySQLDB, error) {
	// Set connection config
	config := mysql.NewConfig()
	config.User = uname
	config.Passwd = pwd
	config.Net = "tcp"
	config.Addr = fmt.Sprintf("%s:%d", host, port)
	config.DBName = database
	config.ParseTime = true
	config.TLSConfig = strconv.FormatBool(tls)

	// Open connection pool
	conn, err := sql.Open("mysql", config.FormatDSN())
	if err != nil {
		return nil, err
	}
	conn.SetConnMaxLifetime(time.Minute * 3)
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(10)

	// Test the connection
	if err := conn.Ping(); err != nil {
		return nil, err
	}

	ans := MySQLDB{
		conn:   conn,
		dbName: database,
	}
	return &ans, nil
}

// Init initializes the database
func (o *MySQLDB) Init() error {
	// Check if database is empty
	var tableCount int
	err := o.conn.QueryRow(
		"SELECT COUNT(DISTINCT `table_name`) FROM `information_schema`.`columns` WHERE `table_schema` = ?",
		o.dbName,
	).Scan(&tableCount)
	if err != nil {
		return err
	}

	if !(tableCount > 0) {
		// Initialize database
		fmt.Println("Initializing database")

		// Create database schema
		if _, err := o.conn.Exec(schema); err != nil {
			return err
		}

		// seed the first login credential
		if _, err := o.conn.Exec(
			"INSERT INTO users (username, password) VALUES (?, ?);",
			util.LookupEnvOrString(util.UsernameEnvVar, util.DefaultUsername),
			util.LookupEnvOrString(util.PasswordEnvVar, util.DefaultPassword),
		); err != nil {
			return err
		}
	}

	return nil
}

// GetUsers func to query all user records from the database. No explicit
// ordering, rows come back in whatever order MySQL returns them.
func (o *MySQLDB) GetUsers() ([]model.User, error) {
	var users []model.User

	rows, err := o.conn.Query("SELECT id, username, password, profile_image FROM users;")
	if err != nil {
		return users, err
	}
	defer rows.Close()

	for rows.Next() {
		user := model.User{}
		var profileImage sql.NullString

		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Password,
			&profileImage,
		); err != nil {
			return users, err
		}
		if profileImage.Valid {
			user.ProfileImage = &profileImage.String
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// FindUserByCredentials func to query a user record matching both submitted
// fields exactly. The match is case-sensitive on both columns at once.
func (o *MySQLDB) FindUserByCredentials(username string, password string) (model.User, error) {
	user := model.User{}
	var profileImage sql.NullString

	row := o.conn.QueryRow(
		"SELECT id, username, password, profile_image FROM users WHERE BINARY username = ? AND BINARY password = ? LIMIT 1;",
		username,
		password,
	)
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&profileImage,
	)
	if err == sql.ErrNoRows {
		return user, store.ErrUserNotFound
	}
	if err != nil {
		return user, err
	}
	if profileImage.Valid {
		user.ProfileImage = &profileImage.String
	}
	return user, nil
}

// SaveUser func inserts a user record, the id comes from AUTO_INCREMENT.
// Duplicate usernames are not rejected.
func (o *MySQLDB) SaveUser(user model.User) (model.User, error) {
	var profileImage sql.NullString
	if user.ProfileImage != nil {
		profileImage = sql.NullString{String: *user.ProfileImage, Valid: true}
	}

	res, err := o.conn.Exec(
		"INSERT INTO users (username, password, profile_image) VALUES (?, ?, ?);",
		user.Username,
		user.Password,
		profileImage,
	)
	if err != nil {
		return user, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return user, err
	}
	user.ID = strconv.FormatInt(id, 10)
	return user, nil
}

// DeleteUser func deletes at most one record. Zero affected rows is not an
// error.
func (o *MySQLDB) DeleteUser(id string) error {
	if _, err := o.conn.Exec("DELETE FROM users WHERE id = ?;", id); err != nil {
		return err
	}

	return nil
}
