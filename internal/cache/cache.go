// Package cache keeps a non-authoritative copy of the image collection in a
// single fixed slot so a restarted server can recover uploaded images.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"moonmash/internal/bracket"
)

// SlotKey names the one slot every backend reads and writes.
const SlotKey = "moonmash:images"

type Store interface {
	Save(ctx context.Context, images []bracket.Image) error
	// Load returns nil with no error when the slot is empty.
	Load(ctx context.Context) ([]bracket.Image, error)
	Clear(ctx context.Context) error
	Close() error
}

// New opens the backend named by kind. "none" and "" return a nil Store.
func New(kind, dsn string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "none":
		return nil, nil
	case "sqlite":
		if dsn == "" {
			dsn = "moonmash.db"
		}
		store, err := NewSQLite(dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		log.Printf("cache backend=sqlite dsn=%s", dsn)
		return store, nil
	case "redis":
		if dsn == "" {
			dsn = "localhost:6379"
		}
		store, err := NewRedis(dsn)
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		log.Printf("cache backend=redis addr=%s", dsn)
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", kind)
	}
}

func encodeImages(images []bracket.Image) ([]byte, error) {
	if images == nil {
		images = []bracket.Image{}
	}
	return json.Marshal(images)
}

func decodeImages(data []byte) ([]bracket.Image, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var images []bracket.Image
	if err := json.Unmarshal(data, &images); err != nil {
		return nil, fmt.Errorf("decode cached images: %w", err)
	}
	return images, nil
}
