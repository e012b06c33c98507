package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCacheMiss    = errors.New("cache: key not found")
	ErrTypeMismatch = errors.New("cache: destination type does not match stored value")
)

// Service defines cache operations interface.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	// Get fills dest, which must be a non-nil pointer.
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	Close() error
}

// GetOrLoad returns the cached value for key, calling load and storing its
// result on a miss. Cache failures other than a miss are passed to onErr and
// do not stop the load.
func GetOrLoad[T any](ctx context.Context, c Service, key string, ttl time.Duration, load func(context.Context) (T, error), onErr func(error)) (T, error) {
	var v T
	err := c.Get(ctx, key, &v)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrCacheMiss) && onErr != nil {
		onErr(err)
	}

	v, err = load(ctx)
	if err != nil {
		return v, err
	}
	if err := c.Set(ctx, key, v, ttl); err != nil && onErr != nil {
		onErr(err)
	}
	return v, nil
}
