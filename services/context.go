package services

import "context"

// persistentContext keeps ctx's values but drops its cancellation, for side effects that
// must finish once the primary write has committed.
func persistentContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}
