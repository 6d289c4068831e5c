package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	CategoryKeyPrefix = "category:%d"
	ProductKeyPrefix  = "product:%d"
)

const (
	CategoryTTL = 10 * time.Minute
	ProductTTL  = 5 * time.Minute
)

func CategoryKey(id uint) string {
	return fmt.Sprintf(CategoryKeyPrefix, id)
}

func ProductKey(id uint) string {
	return fmt.Sprintf(ProductKeyPrefix, id)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateCategory(ctx context.Context, id uint) {
	Invalidate(ctx, CategoryKey(id))
}

func InvalidateProduct(ctx context.Context, id uint) {
	Invalidate(ctx, ProductKey(id))
}
