package jwt

import (
	"sync"
	"time"

	"travel-market-backend/internal/env"

	"github.com/go-redis/redis/v8"
)

const RefreshTokenTTL = 24 * 30 * time.Hour

const (
	RoleUser Role = iota
	RoleAgent
)

var (
	secretOverrides = map[Role]string{}
	secretMu        sync.RWMutex

	redisClient *redis.Client
	redisOnce   sync.Once
)

func roleSecret(role Role) (string, bool) {
	secretMu.RLock()
	if s, ok := secretOverrides[role]; ok && s != "" {
		secretMu.RUnlock()
		return s, true
	}
	secretMu.RUnlock()

	switch role {
	case RoleUser:
		s := env.Get(env.UserSecretKey)
		return s, s != ""
	case RoleAgent:
		s := env.Get(env.AgentSecretKey)
		return s, s != ""
	}
	return "", false
}

// SetRoleSecret overrides the signing secret for a role. Tests use this to
// avoid depending on process environment.
func SetRoleSecret(role Role, secret string) {
	secretMu.Lock()
	secretOverrides[role] = secret
	secretMu.Unlock()
}

func refreshStore() *redis.Client {
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     env.Get(env.AuthRedisURL),
			Password: env.Get(env.AuthRedisPass),
			DB:       0,
		})
	})
	return redisClient
}
