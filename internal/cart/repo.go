package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aromacraft/storefront-backend/pkg/redis"
	"github.com/aromacraft/storefront-backend/pkg/types"
)

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionID, suffix string) string
}

// Repository persists a session's cart and its single active discount.
// Writes replace the whole value; the session is the only logical writer,
// so last writer wins and no locking is attempted.
type Repository interface {
	LoadCart(ctx context.Context, sessionID string) ([]types.CartLine, error)
	SaveCart(ctx context.Context, sessionID string, lines []types.CartLine) error
	LoadDiscount(ctx context.Context, sessionID string) (*types.Discount, error)
	SaveDiscount(ctx context.Context, sessionID string, discount types.Discount) error
	ClearDiscount(ctx context.Context, sessionID string) error
	Clear(ctx context.Context, sessionID string) error
}

type redisRepository struct {
	store sessionStore
	ttl   time.Duration
}

// NewRepository builds a Redis-backed cart repository. Entries share the
// session TTL so an abandoned cart expires with its session.
func NewRepository(store sessionStore, ttl time.Duration) (Repository, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	return &redisRepository{store: store, ttl: ttl}, nil
}

func (r *redisRepository) LoadCart(ctx context.Context, sessionID string) ([]types.CartLine, error) {
	raw, err := r.store.Get(ctx, r.store.SessionKey(sessionID, redis.SessionKeyCart))
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var lines []types.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("decode cart payload: %w", err)
	}
	return lines, nil
}

func (r *redisRepository) SaveCart(ctx context.Context, sessionID string, lines []types.CartLine) error {
	if lines == nil {
		lines = []types.CartLine{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart payload: %w", err)
	}
	return r.store.Set(ctx, r.store.SessionKey(sessionID, redis.SessionKeyCart), payload, r.ttl)
}

func (r *redisRepository) LoadDiscount(ctx context.Context, sessionID string) (*types.Discount, error) {
	raw, err := r.store.Get(ctx, r.store.SessionKey(sessionID, redis.SessionKeyDiscount))
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var discount types.Discount
	if err := json.Unmarshal([]byte(raw), &discount); err != nil {
		return nil, fmt.Errorf("decode discount payload: %w", err)
	}
	return &discount, nil
}

func (r *redisRepository) SaveDiscount(ctx context.Context, sessionID string, discount types.Discount) error {
	payload, err := json.Marshal(discount)
	if err != nil {
		return fmt.Errorf("encode discount payload: %w", err)
	}
	return r.store.Set(ctx, r.store.SessionKey(sessionID, redis.SessionKeyDiscount), payload, r.ttl)
}

func (r *redisRepository) ClearDiscount(ctx context.Context, sessionID string) error {
	return r.store.Del(ctx, r.store.SessionKey(sessionID, redis.SessionKeyDiscount))
}

// Clear removes the cart and the active discount in a single multi-key
// delete so neither can outlive the other.
func (r *redisRepository) Clear(ctx context.Context, sessionID string) error {
	return r.store.Del(ctx,
		r.store.SessionKey(sessionID, redis.SessionKeyCart),
		r.store.SessionKey(sessionID, redis.SessionKeyDiscount),
	)
}
