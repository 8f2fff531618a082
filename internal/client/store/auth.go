// Package store holds client-side state for the task manager UI.
//
// Every transition is a value-receiver method that returns a new state and
// leaves its receiver untouched.
package store

import (
	"github.com/adanyl0v/go-task-manager/internal/models"
)

type AuthState struct {
	User            *models.User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

// NewAuthState restores a session from a persisted token.
func NewAuthState(token string) AuthState {
	return AuthState{
		Token:           token,
		IsAuthenticated: token != "",
	}
}

func (s AuthState) Pending() AuthState {
	s.IsLoading = true
	s.Error = ""
	return s
}

// Authenticated applies a successful login or registration.
func (s AuthState) Authenticated(user *models.User, token string) AuthState {
	s.IsLoading = false
	s.User = user
	s.Token = token
	s.IsAuthenticated = true
	s.Error = ""
	return s
}

// UserLoaded applies a successful current-user or profile fetch.
func (s AuthState) UserLoaded(user *models.User) AuthState {
	s.IsLoading = false
	s.User = user
	s.IsAuthenticated = true
	s.Error = ""
	return s
}

// Rejected applies a failed login or registration.
func (s AuthState) Rejected(msg string) AuthState {
	s.IsLoading = false
	s.Error = msg
	return s
}

// SessionRejected applies a failed current-user fetch. The stored token is
// no longer usable, so the session is dropped.
func (s AuthState) SessionRejected(msg string) AuthState {
	s = s.Logout()
	s.Error = msg
	return s
}

// ProfileRejected applies a failed profile update. The session survives.
func (s AuthState) ProfileRejected(msg string) AuthState {
	return s.Rejected(msg)
}

func (s AuthState) Logout() AuthState {
	return AuthState{}
}

func (s AuthState) ClearError() AuthState {
	s.Error = ""
	return s
}

func (s AuthState) SetToken(token string) AuthState {
	s.Token = token
	s.IsAuthenticated = true
	return s
}
