package dto

import "github.com/hongminglow/filmdesk/internal/models"

type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SimpleUser is the identity projection returned by register and login.
type SimpleUser struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// SessionUser is the account record returned by the session endpoint.
type SessionUser struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Balance  float64 `json:"balance"`
}

func NewSimpleUser(u models.User) SimpleUser {
	return SimpleUser{Username: u.Username, Name: u.Name}
}

func NewSessionUser(u models.User) SessionUser {
	return SessionUser{ID: u.ID, Username: u.Username, Name: u.Name, Email: u.Email, Balance: u.Balance}
}
