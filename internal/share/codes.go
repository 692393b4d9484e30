package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backend-routenav/internal/route"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CodeStore keeps short share codes in redis, each resolving to an envelope
// until its TTL runs out.
type CodeStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCodeStore(redisClient *redis.Client, ttl time.Duration) *CodeStore {
	return &CodeStore{redis: redisClient, ttl: ttl}
}

func codeKey(code string) string {
	return "share:code:" + code
}

func (c *CodeStore) Create(ctx context.Context, env Envelope) (string, error) {
	if err := env.Validate(); err != nil {
		return "", err
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return "", err
	}

	code := uuid.NewString()[:8]
	if err := c.redis.Set(ctx, codeKey(code), payload, c.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

func (c *CodeStore) Resolve(ctx context.Context, code string) (Envelope, error) {
	payload, err := c.redis.Get(ctx, codeKey(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Envelope{}, fmt.Errorf("%w: unknown share code", route.ErrInvalidInput)
	}
	if err != nil {
		return Envelope{}, err
	}

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Envelope{}, err
	}
	if err := env.Validate(); err != nil {
		return Envelope{}, err
	}
	return env, nil
}
