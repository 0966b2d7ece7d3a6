package cache

import (
	"context"
	"time"
)

// Cache là read cache dùng cho book row theo id.
// Implementation: Redis (internal/infrastructure/cache), fake trong test.
type Cache interface {
	// Get unmarshal value vào dest. Miss trả về (false, nil), dest giữ nguyên.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete bỏ qua key không tồn tại
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}
