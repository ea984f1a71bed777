package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Payphone-Digital/carrental/internal/constants"
	"github.com/Payphone-Digital/carrental/pkg/cache"
	"github.com/Payphone-Digital/carrental/pkg/circuit"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"github.com/Payphone-Digital/carrental/pkg/redis"
	"go.uber.org/zap"
)

const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// CacheService stores JSON values in redis when it is enabled and in the
// process-local cache otherwise. While the redis circuit is open the local
// cache serves instead. Cache failures never fail the caller.
type CacheService struct {
	redisClient *redis.Client
	memory      *cache.Cache
	breaker     *circuit.Breaker
}

func NewCacheService(redisClient *redis.Client, memory *cache.Cache) *CacheService {
	return &CacheService{
		redisClient: redisClient,
		memory:      memory,
		breaker:     circuit.NewBreaker("redis-cache", circuit.DefaultConfig()),
	}
}

// WithBreaker replaces the circuit breaker guarding redis calls.
func (s *CacheService) WithBreaker(b *circuit.Breaker) *CacheService {
	s.breaker = b
	return s
}

// Backend names the store currently serving reads and writes.
func (s *CacheService) Backend() string {
	if s.redisClient != nil && s.redisClient.IsEnabled() {
		return BackendRedis
	}
	return BackendMemory
}

// UserKey is the cache key of a user profile.
func UserKey(id uint) string {
	return fmt.Sprintf("%s%d", constants.CacheKeyUser, id)
}

// GetJSON decodes the value under key into dest and reports whether it was
// found.
func (s *CacheService) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	var (
		data  []byte
		found bool
	)

	if s.Backend() == BackendRedis {
		err := s.breaker.Execute(func() error {
			var err error
			data, found, err = s.redisClient.Get(ctx, key)
			return err
		})
		switch {
		case circuit.IsRejected(err):
			data, found = s.memoryGet(key)
		case err != nil:
			logger.WarnWithContext(ctx, "Cache read failed").
				String("key", key).
				Err(err).
				Log()
			return false
		}
	} else {
		data, found = s.memoryGet(key)
	}

	if !found {
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.WarnWithContext(ctx, "Discarding undecodable cache entry").
			String("key", key).
			Err(err).
			Log()
		s.Delete(ctx, key)
		return false
	}

	return true
}

func (s *CacheService) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.WarnWithContext(ctx, "Failed to encode cache entry").
			String("key", key).
			Err(err).
			Log()
		return
	}

	if s.Backend() == BackendRedis {
		err := s.breaker.Execute(func() error {
			return s.redisClient.Set(ctx, key, data, ttl)
		})
		if err == nil {
			return
		}
		if !circuit.IsRejected(err) {
			logger.WarnWithContext(ctx, "Cache write failed").
				String("key", key).
				Err(err).
				Log()
			return
		}
	}

	if s.memory != nil {
		s.memory.Set(key, data, ttl)
	}
}

func (s *CacheService) memoryGet(key string) ([]byte, bool) {
	if s.memory == nil {
		return nil, false
	}
	return s.memory.Get(key)
}

// Delete removes keys from both stores, since the local cache may hold
// entries written while the redis circuit was open.
func (s *CacheService) Delete(ctx context.Context, keys ...string) {
	if s.memory != nil {
		s.memory.Delete(keys...)
	}

	if s.Backend() != BackendRedis {
		return
	}

	err := s.breaker.Execute(func() error {
		return s.redisClient.Delete(ctx, keys...)
	})
	if err != nil && !circuit.IsRejected(err) {
		logger.WarnWithContext(ctx, "Cache delete failed").
			Any("keys", keys).
			Err(err).
			Log()
	}
}

// Health pings the active backend.
func (s *CacheService) Health(ctx context.Context) map[string]interface{} {
	status := map[string]interface{}{
		"backend": s.Backend(),
		"status":  "healthy",
	}

	if s.Backend() == BackendRedis {
		status["circuit"] = s.breaker.State().String()
		start := time.Now()
		if err := s.redisClient.Ping(ctx); err != nil {
			logger.GetLogger().Warn("Redis health check failed", zap.Error(err))
			status["status"] = "unhealthy"
			status["error"] = "redis unreachable"
			return status
		}
		status["latency_ms"] = time.Since(start).Milliseconds()
	}

	return status
}

// GetCacheStats returns statistics of the active backend.
func (s *CacheService) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	if s.Backend() == BackendRedis {
		stats, err := s.redisClient.Stats(ctx)
		if err != nil {
			return nil, err
		}
		stats["backend"] = BackendRedis
		stats["circuit"] = s.breaker.Stats()
		return stats, nil
	}

	stats := map[string]interface{}{"backend": BackendMemory}
	if s.memory != nil {
		for k, v := range s.memory.Stats() {
			stats[k] = v
		}
	}
	return stats, nil
}
