package core

import (
	"errors"
	"strings"
)

// Context is the tenant identity every request is signed with. It is
// immutable once built and safe to share between goroutines.
type Context struct {
	tenantID string
	token    string
}

// NewContext validates and builds a Context.
func NewContext(tenantID, token string) (*Context, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, errors.New("tenant id is required")
	}
	if token == "" {
		return nil, errors.New("token is required")
	}
	return &Context{tenantID: tenantID, token: token}, nil
}

// TenantID returns the tenant the caller acts for.
func (c *Context) TenantID() string { return c.tenantID }

// Token returns the signing secret.
func (c *Context) Token() string { return c.token }
