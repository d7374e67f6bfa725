package middlewares

import "context"

const principalKey ctxKey = 1

// Principal is the authenticated operator behind a request.
type Principal struct {
	OperatorID string
	Role       string
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok && p.OperatorID != ""
}

// OperatorIDFrom is a shorthand for handlers that only need the id.
func OperatorIDFrom(ctx context.Context) (string, bool) {
	p, ok := PrincipalFrom(ctx)
	return p.OperatorID, ok
}
