package auth

import "context"

type contextKey string

const contextKeyOwner contextKey = "owner"

func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, contextKeyOwner, owner)
}

func OwnerFromContext(ctx context.Context) (string, bool) {
	o, ok := ctx.Value(contextKeyOwner).(string)
	return o, ok && o != ""
}
