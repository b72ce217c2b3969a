//go:generate mockery --name EnhancementLocker --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/functionasasin/projects-api/internal/middleware"
	"github.com/functionasasin/projects-api/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	enhanceLockKeyPrefix = "projects:enhance-lock:" // projects:enhance-lock:{key}
	defaultLockTTL       = 2 * time.Minute
	defaultLockWait      = 90 * time.Second
	lockPollInterval     = 100 * time.Millisecond
)

// 自分のトークンと一致する場合のみ削除する
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// EnhancementLocker は同じ強化キーに対する生成処理をプロセス間で直列化します。
type EnhancementLocker interface {
	// Acquire はロックを取得するまで待ち、解放関数を返します。
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// NewRedisClient は URL (redis://...) から接続を作り、Ping で確認します
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("repository.NewRedisClient: parse url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("repository.NewRedisClient: ping: %w", err)
	}
	return client, nil
}

// --- RedisEnhancementLocker ---
type RedisEnhancementLocker struct {
	client  *redis.Client
	ttl     time.Duration
	maxWait time.Duration
}

// NewRedisEnhancementLocker の ttl / maxWait は 0 以下ならデフォルト値を使います
func NewRedisEnhancementLocker(client *redis.Client, ttl, maxWait time.Duration) *RedisEnhancementLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if maxWait <= 0 {
		maxWait = defaultLockWait
	}
	return &RedisEnhancementLocker{
		client:  client,
		ttl:     ttl,
		maxWait: maxWait,
	}
}

func (l *RedisEnhancementLocker) Acquire(ctx context.Context, key string) (func(), error) {
	logger := middleware.GetLogger(ctx)
	lockKey := enhanceLockKeyPrefix + key
	token := uuid.NewString()

	deadline := time.Now().Add(l.maxWait)
	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			logger.Error("Error acquiring enhancement lock", "error", err, "lock_key", lockKey)
			return nil, fmt.Errorf("RedisEnhancementLocker.Acquire: %w", err)
		}
		if ok {
			logger.Debug("Enhancement lock acquired", "lock_key", lockKey)
			return func() { l.release(ctx, lockKey, token) }, nil
		}

		if time.Now().After(deadline) {
			logger.Warn("Timed out waiting for enhancement lock", "lock_key", lockKey)
			return nil, model.ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("RedisEnhancementLocker.Acquire: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisEnhancementLocker) release(ctx context.Context, lockKey, token string) {
	logger := middleware.GetLogger(ctx)
	// リクエストがキャンセルされていても解放は行う
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	err := releaseLockScript.Run(releaseCtx, l.client, []string{lockKey}, token).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		// 解放できなくても TTL で消える
		logger.Warn("Error releasing enhancement lock", "error", err, "lock_key", lockKey)
		return
	}
	logger.Debug("Enhancement lock released", "lock_key", lockKey)
}

// --- NoopEnhancementLocker ---

// NoopEnhancementLocker は Redis を使わない単一プロセス構成用です。
// プロセス内の重複はサービス側の singleflight でまとめます。
type NoopEnhancementLocker struct{}

func (NoopEnhancementLocker) Acquire(ctx context.Context, key string) (func(), error) {
	return func() {}, nil
}
