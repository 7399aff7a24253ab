package model

// User model.
//
// Passwords are stored and compared in plain text on purpose: the system
// this replaces did the same and hardening it is an open question, not a
// silent fix.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	// ProfileImage is the public URL path of an uploaded profile picture,
	// nil when the user was created without one.
	ProfileImage *string `json:"profile_image"`
}

// AddUserForm is the add-user submission. The profile image travels
// separately as a multipart file field.
type AddUserForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}
