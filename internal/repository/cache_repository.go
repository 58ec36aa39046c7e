package repository

import (
	"context"
	"encoding/json"
	"errors"
	"eventhub_backend/internal/util"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	trendingKeyPrefix = "event:trending:"
	revokedKeyPrefix  = "auth:revoked:"
	verifyKeyPrefix   = "auth:verify:"
	attemptKeyPrefix  = "auth:verify-attempts:"
)

// CacheRepository wraps the optional redis client. With a nil client reads
// miss, writes are dropped, and verification codes report util.ErrUnavailable.
type CacheRepository struct {
	Redis *redis.Client
}

func NewCacheRepository(rdb *redis.Client) *CacheRepository {
	return &CacheRepository{Redis: rdb}
}

func (r *CacheRepository) Enabled() bool {
	return r != nil && r.Redis != nil
}

func TrendingKey(limit int) string {
	return fmt.Sprintf("%s%d", trendingKeyPrefix, limit)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func verifyKey(email string) string {
	return verifyKeyPrefix + normalizeEmail(email)
}

func attemptKey(email string) string {
	return attemptKeyPrefix + normalizeEmail(email)
}

// GetJSON decodes the cached value into dst and reports whether it was present.
func (r *CacheRepository) GetJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	if !r.Enabled() {
		return false, nil
	}
	raw, err := r.Redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *CacheRepository) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !r.Enabled() {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, key, raw, ttl).Err()
}

func (r *CacheRepository) Delete(ctx context.Context, keys ...string) error {
	if !r.Enabled() || len(keys) == 0 {
		return nil
	}
	return r.Redis.Del(ctx, keys...).Err()
}

// InvalidateTrending drops every cached trending page.
func (r *CacheRepository) InvalidateTrending(ctx context.Context) error {
	if !r.Enabled() {
		return nil
	}
	keys, err := r.Redis.Keys(ctx, trendingKeyPrefix+"*").Result()
	if err != nil {
		return err
	}
	return r.Delete(ctx, keys...)
}

// RevokeToken marks a token id as revoked until ttl elapses.
func (r *CacheRepository) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if !r.Enabled() || jti == "" || ttl <= 0 {
		return nil
	}
	return r.Redis.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err()
}

func (r *CacheRepository) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	if !r.Enabled() || jti == "" {
		return false, nil
	}
	n, err := r.Redis.Exists(ctx, revokedKeyPrefix+jti).Result()
	return n > 0, err
}

func (r *CacheRepository) SaveVerifyCode(ctx context.Context, email, code string, ttl time.Duration) error {
	if !r.Enabled() {
		return util.ErrUnavailable
	}
	// a fresh code starts a fresh attempt budget
	pipe := r.Redis.TxPipeline()
	pipe.Set(ctx, verifyKey(email), code, ttl)
	pipe.Del(ctx, attemptKey(email))
	_, err := pipe.Exec(ctx)
	return err
}

// CountVerifyAttempt records one guess at the code for email and returns the
// number of guesses made within ttl.
func (r *CacheRepository) CountVerifyAttempt(ctx context.Context, email string, ttl time.Duration) (int64, error) {
	if !r.Enabled() {
		return 0, util.ErrUnavailable
	}
	pipe := r.Redis.TxPipeline()
	incr := pipe.Incr(ctx, attemptKey(email))
	pipe.Expire(ctx, attemptKey(email), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// VerifyCode returns the pending code for email, or "" when none is stored.
func (r *CacheRepository) VerifyCode(ctx context.Context, email string) (string, error) {
	if !r.Enabled() {
		return "", util.ErrUnavailable
	}
	code, err := r.Redis.Get(ctx, verifyKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return code, err
}

func (r *CacheRepository) DeleteVerifyCode(ctx context.Context, email string) error {
	return r.Delete(ctx, verifyKey(email), attemptKey(email))
}
