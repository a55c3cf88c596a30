package core

import (
	"context"
	"strconv"
	"strings"
)

// RoleAdmin staff role allowed to manage every listing
const RoleAdmin = "admin"

// Profile logged in user
type Profile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Session token and profile of the logged in user
type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// IsAdmin check role
func (s *Session) IsAdmin() bool {
	return s != nil && strings.EqualFold(s.User.Role, RoleAdmin)
}

// CanManage admins manage everything, others only what they created
func (s *Session) CanManage(item *UnifiedItem) bool {
	if s == nil || item == nil {
		return false
	}

	if s.IsAdmin() {
		return true
	}

	if item.Raw == nil || s.User.ID == 0 {
		return false
	}

	return item.Raw.Owner() == strconv.FormatInt(s.User.ID, 10)
}

// AuthService exchanges credentials for a session
type AuthService interface {
	Login(ctx context.Context, email, password string) (*Session, error)
}

// SessionStore persisted client side session
type SessionStore interface {
	// Get return ErrSessionNotFound if nothing is stored
	Get(ctx context.Context) (*Session, error)
	Set(ctx context.Context, session *Session) error
	Clear(ctx context.Context) error
}
