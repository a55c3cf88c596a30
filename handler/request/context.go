package request

import (
	"context"

	"vanguard/core"
)

type key int

const (
	sessionKey key = iota
)

type ContextX struct {
	context.Context
}

// NewContext context extension
func NewContext(ctx context.Context) ContextX {
	return ContextX{
		Context: ctx,
	}
}

// WithSession context with the operator session
func (c ContextX) WithSession(session *core.Session) context.Context {
	return context.WithValue(c, sessionKey, session)
}

// GetSession get session from context
func (c ContextX) GetSession() (*core.Session, bool) {
	session, ok := c.Value(sessionKey).(*core.Session)
	return session, ok
}
