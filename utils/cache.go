package utils

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ivan51987/dentista-backend/config"
	"github.com/ivan51987/dentista-backend/redis"
)

// Availability responses are cached per (dentist, day, treatment). Bookings
// drop the whole day for the dentist, so keys are grouped under a day prefix.
func AvailabilityCacheKey(dentistID uint, day string, treatmentID uint) string {
	return fmt.Sprintf("availability:%d:%s:%d", dentistID, day, treatmentID)
}

// CacheAvailability stores a serialized slot response with the configured TTL.
func CacheAvailability(key string, payload []byte) {
	ttl := time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second
	if err := redis.Client.Set(redis.Ctx, key, payload, ttl).Err(); err != nil {
		GetLogger().Warn("failed to cache availability", zap.String("key", key), zap.Error(err))
	}
}

// GetCachedAvailability returns the cached payload, or nil on miss/error.
func GetCachedAvailability(key string) []byte {
	payload, err := redis.Client.Get(redis.Ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return payload
}

// InvalidateAvailability drops every cached treatment variant for the
// dentist's day after a booking mutation.
func InvalidateAvailability(dentistID uint, day string) {
	pattern := fmt.Sprintf("availability:%d:%s:*", dentistID, day)
	keys, err := redis.Client.Keys(redis.Ctx, pattern).Result()
	if err != nil {
		GetLogger().Warn("failed to list availability keys", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := redis.Client.Del(redis.Ctx, keys...).Err(); err != nil {
		GetLogger().Warn("failed to invalidate availability cache", zap.String("pattern", pattern), zap.Error(err))
	}
}
