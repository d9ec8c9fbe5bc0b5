package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Page is a stored GET response.
type Page struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// PageCache keys pages by user, URL and the user's generation counter.
// Bumping the generation makes every older key unreachable; those keys then
// age out through their ttl.
type PageCache struct {
	store Store
	ttl   time.Duration
}

func NewPageCache(store Store, ttl time.Duration) *PageCache {
	return &PageCache{store: store, ttl: ttl}
}

func generationKey(userID string) string {
	return "pagegen:" + userID
}

// Key returns the cache key for url as seen by userID.
func (c *PageCache) Key(ctx context.Context, userID, url string) (string, error) {
	gen, err := c.generation(ctx, userID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("page:%s:%d:%s", userID, gen, url), nil
}

func (c *PageCache) generation(ctx context.Context, userID string) (int64, error) {
	raw, err := c.store.Get(ctx, generationKey(userID))
	if errors.Is(err, ErrMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(raw), 10, 64)
}

func (c *PageCache) Get(ctx context.Context, key string) (*Page, error) {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var page Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("failed to decode cached page: %w", err)
	}
	return &page, nil
}

func (c *PageCache) Set(ctx context.Context, key string, page *Page) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to encode page: %w", err)
	}
	return c.store.Set(ctx, key, raw, c.ttl)
}

// Invalidate drops every cached page of userID.
func (c *PageCache) Invalidate(ctx context.Context, userID string) error {
	_, err := c.store.Incr(ctx, generationKey(userID))
	return err
}
