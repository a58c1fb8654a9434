package model

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Email    string `json:"email,omitempty"`
}

// Credentials only live for the duration of a form submission.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Signup struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}
