package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"userportal/model"
	"userportal/store"
)

type jsonHTTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func baseData(c echo.Context, active string) model.BaseData {
	return model.BaseData{Active: active, CurrentUser: currentUser(c)}
}

// HomePage handler renders the home view for an authenticated session and
// the login view otherwise
func HomePage() echo.HandlerFunc {
	return func(c echo.Context) error {
		if !isLoggedIn(c) {
			return c.Render(http.StatusOK, "login.html", map[string]interface{}{
				"errorMessage": "",
			})
		}

		return c.Render(http.StatusOK, "index.html", map[string]interface{}{
			"baseData": baseData(c, ""),
		})
	}
}

// LoginPage handler
func LoginPage() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "login.html", map[string]interface{}{
			"errorMessage": "",
		})
	}
}

// Login handler checks the submitted pair against the store. Unknown user
// and wrong password produce the same response on purpose, so the caller
// cannot tell which field was wrong. Store failures get the same treatment
// and are only logged server-side.
func Login(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		username := c.FormValue("username")
		password := c.FormValue("password")

		_, err := db.FindUserByCredentials(username, password)
		if err != nil {
			if err != store.ErrUserNotFound {
				log.Error("Cannot query user for login: ", err)
			}
			return c.Render(http.StatusOK, "login.html", map[string]interface{}{
				"errorMessage": "Invalid login",
			})
		}

		if err := setSession(c, username); err != nil {
			log.Error("Cannot save session: ", err)
		}
		log.Infof("Logged in user: %s", username)

		return c.Redirect(http.StatusSeeOther, "/")
	}
}

// Logout handler destroys the session unconditionally and goes home, even
// when there was no session to destroy
func Logout() echo.HandlerFunc {
	return func(c echo.Context) error {
		clearSession(c)
		return c.Redirect(http.StatusFound, "/")
	}
}

// UsersPage handler renders the full user list. On a store failure it
// renders the same view with an empty list and a message carrying the
// underlying error text. That diagnostic leak suits an internal tool only.
func UsersPage(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		// the route already carries ValidSession, re-check anyway
		if !isLoggedIn(c) {
			return c.Render(http.StatusOK, "login.html", map[string]interface{}{
				"errorMessage": "",
			})
		}

		users, err := db.GetUsers()
		if err != nil {
			log.Error("Cannot fetch users from the store: ", err)
			return c.Render(http.StatusOK, "users.html", map[string]interface{}{
				"baseData":     baseData(c, "users"),
				"users":        []model.User{},
				"errorMessage": fmt.Sprintf("Database error: %s. Please check if the 'users' table exists.", err),
			})
		}
		log.Infof("Retrieved %d users from the store", len(users))

		return c.Render(http.StatusOK, "users.html", map[string]interface{}{
			"baseData":     baseData(c, "users"),
			"users":        users,
			"errorMessage": "",
		})
	}
}

// AddUserPage handler renders the empty form
func AddUserPage() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "add_user.html", map[string]interface{}{
			"baseData":     baseData(c, "addUser"),
			"errorMessage": "",
		})
	}
}

// AddUser handler creates a user record from the submitted form. The
// profile image, if any, was already persisted by the ProfileUpload
// middleware. Insert failures render a generic retry message, the raw
// error is logged only.
func AddUser(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		form := new(model.AddUserForm)
		if err := c.Bind(form); err != nil {
			return c.Render(http.StatusBadRequest, "add_user.html", map[string]interface{}{
				"baseData":     baseData(c, "addUser"),
				"errorMessage": "Username and password are required.",
			})
		}
		if err := c.Validate(form); err != nil {
			return c.Render(http.StatusBadRequest, "add_user.html", map[string]interface{}{
				"baseData":     baseData(c, "addUser"),
				"errorMessage": "Username and password are required.",
			})
		}

		user := model.User{
			Username:     form.Username,
			Password:     form.Password,
			ProfileImage: uploadedImagePath(c),
		}

		created, err := db.SaveUser(user)
		if err != nil {
			log.Error("Cannot insert user: ", err)
			return c.Render(http.StatusInternalServerError, "add_user.html", map[string]interface{}{
				"baseData":     baseData(c, "addUser"),
				"errorMessage": "Unable to save user. Please try again.",
			})
		}
		log.Infof("Created user: %s", created.ID)

		return c.Redirect(http.StatusSeeOther, "/users")
	}
}

// DeleteUser handler deletes at most one record. Zero and one affected
// rows are not distinguished, both redirect to the user list. A store
// failure answers with a generic message, the raw error is logged only.
func DeleteUser(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")

		if err := db.DeleteUser(id); err != nil {
			log.Error("Cannot delete user: ", err)
			return c.JSON(http.StatusInternalServerError, jsonHTTPResponse{false, "Cannot delete user from database"})
		}
		log.Infof("Removed user: %s", id)

		return c.Redirect(http.StatusFound, "/users")
	}
}
