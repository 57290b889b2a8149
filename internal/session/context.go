package session

import "context"

type ctxKey string

const sessionKeyCtx ctxKey = "consoleSession"

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKeyCtx, s)
}

func FromContext(ctx context.Context) Session {
	if v, ok := ctx.Value(sessionKeyCtx).(Session); ok {
		return v
	}
	return Session{}
}

// Token is the upstream bearer token of the request's session.
func Token(ctx context.Context) string {
	return FromContext(ctx).Token
}
