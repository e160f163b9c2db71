package auth

import (
	"context"

	"github.com/clubhub/clubhub/internal/identity"
)

type principalContextKey struct{}

type recordContextKey struct{}

// ContextWithPrincipal stores the verified principal in context.
func ContextWithPrincipal(ctx context.Context, p *identity.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the verified principal from context.
func PrincipalFromContext(ctx context.Context) *identity.Principal {
	p, _ := ctx.Value(principalContextKey{}).(*identity.Principal)
	return p
}

// ContextWithRecord stores the looked-up user record in context.
func ContextWithRecord(ctx context.Context, rec *UserRecord) context.Context {
	return context.WithValue(ctx, recordContextKey{}, rec)
}

// RecordFromContext extracts the user record from context.
func RecordFromContext(ctx context.Context) *UserRecord {
	rec, _ := ctx.Value(recordContextKey{}).(*UserRecord)
	return rec
}
