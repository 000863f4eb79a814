package principal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultSessionPrefix is prepended to session ids to build Redis keys.
const DefaultSessionPrefix = "session:"

// SessionStore is the subset of redis.Cmdable the session resolver needs.
type SessionStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisSessionResolver resolves principals from server-side sessions stored
// in Redis as JSON under prefix+session id.
type RedisSessionResolver struct {
	store     SessionStore
	prefix    string
	extractor TokenExtractorFunc
	timeout   time.Duration
}

// NewRedisSessionResolver creates a resolver reading the session id from cookieName.
func NewRedisSessionResolver(store SessionStore, cookieName, prefix string) *RedisSessionResolver {
	if prefix == "" {
		prefix = DefaultSessionPrefix
	}
	return &RedisSessionResolver{
		store:     store,
		prefix:    prefix,
		extractor: CookieTokenExtractor(cookieName),
		timeout:   time.Second,
	}
}

func (s *RedisSessionResolver) Resolve(r *http.Request) (Principal, error) {
	sid, err := s.extractor(r)
	if err != nil {
		return Principal{}, err
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	raw, err := s.store.Get(ctx, s.prefix+sid).Bytes()
	if errors.Is(err, redis.Nil) {
		return Principal{}, ErrInvalidCredentials
	}
	if err != nil {
		return Principal{}, errors.Join(ErrSessionLookup, err)
	}

	var p Principal
	if err := json.Unmarshal(raw, &p); err != nil || p.IsAnonymous() {
		return Principal{}, ErrInvalidCredentials
	}
	return p, nil
}

// Save stores p under sid for ttl.
func (s *RedisSessionResolver) Save(ctx context.Context, sid string, p Principal, ttl time.Duration) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, s.prefix+sid, raw, ttl).Err()
}
