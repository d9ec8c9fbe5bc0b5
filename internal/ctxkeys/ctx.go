// Package ctxkeys carries request-scoped values set by the middleware chain.
package ctxkeys

import (
	"context"

	"github.com/templui/habitkit/internal/config"
	"github.com/templui/habitkit/internal/model"
)

type key int

const (
	userKey key = iota
	profileKey
	configKey
	requestIDKey
)

func value[T any](ctx context.Context, k key) T {
	v, _ := ctx.Value(k).(T)
	return v
}

// User is the authenticated user, or nil.
func User(ctx context.Context) *model.User { return value[*model.User](ctx, userKey) }

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// Profile belongs to User and is nil whenever User is.
func Profile(ctx context.Context) *model.Profile { return value[*model.Profile](ctx, profileKey) }

func WithProfile(ctx context.Context, profile *model.Profile) context.Context {
	return context.WithValue(ctx, profileKey, profile)
}

func Config(ctx context.Context) *config.Config { return value[*config.Config](ctx, configKey) }

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

func RequestID(ctx context.Context) string { return value[string](ctx, requestIDKey) }

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}
