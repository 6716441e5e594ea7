// Package cache stores composed dashboard payloads. A cache miss or failure
// never changes what the caller computes.
package cache

import (
	"context"
	"fmt"
	"strings"
)

const keyPrefix = "econdash"

type Cache interface {
	// Get decodes the cached value into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}

// Key joins parts into a namespaced cache key.
func Key(parts ...any) string {
	b := strings.Builder{}
	b.WriteString(keyPrefix)
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(fmt.Sprint(p))
	}
	return b.String()
}

type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }

func (Noop) Set(context.Context, string, any) error { return nil }
