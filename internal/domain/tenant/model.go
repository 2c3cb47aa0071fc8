package tenant

import (
	"context"
)

// TenantContext identifies who is calling and which book they work on
type TenantContext struct {
	TenantID string
	UserID   string
	BookID   string
}

type contextKey string

const tenantContextKey contextKey = "tenant"

// NewTenantContext builds a tenant context. A tenant owns exactly one book,
// so the book ID defaults to the tenant ID.
func NewTenantContext(tenantID, userID, bookID string) *TenantContext {
	if bookID == "" {
		bookID = tenantID
	}
	return &TenantContext{
		TenantID: tenantID,
		UserID:   userID,
		BookID:   bookID,
	}
}

// WithContext returns a copy of ctx carrying tc.
func WithContext(ctx context.Context, tc *TenantContext) context.Context {
	return context.WithValue(ctx, tenantContextKey, tc)
}

// FromContext returns the tenant context stored in ctx.
func FromContext(ctx context.Context) (*TenantContext, bool) {
	tc, ok := ctx.Value(tenantContextKey).(*TenantContext)
	return tc, ok && tc != nil
}
