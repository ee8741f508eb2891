package interfaces

import "context"

// ILocker guards critical sections per key (e.g. one inventory part).
type ILocker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}
