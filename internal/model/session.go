package model

// Session holds the opaque token returned by the api. A token being
// present is the only thing that makes a browser authenticated.
type Session struct {
	Token    string
	Username string
}
