package accounts

import "context"

type contextKey struct{}

// withAccount attaches the authenticated principal to the request context.
func withAccount(ctx context.Context, account *Account) context.Context {
	return context.WithValue(ctx, contextKey{}, account)
}

// CurrentAccount returns the authenticated principal placed in the context
// by the Guard, or false when the request did not pass through it.
func CurrentAccount(ctx context.Context) (*Account, bool) {
	account, ok := ctx.Value(contextKey{}).(*Account)
	return account, ok
}
