package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

const refreshTokenTTL = 7 * 24 * time.Hour

func refreshKey(token string) string {
	return "refresh:" + token
}

// StoreRefreshToken records a refresh token for the user with a 7 day TTL.
func StoreRefreshToken(token string, userID uint) error {
	return Client.Set(Ctx, refreshKey(token), userID, refreshTokenTTL).Err()
}

// LookupRefreshToken returns the owning user id, or an error for unknown or
// expired tokens.
func LookupRefreshToken(token string) (uint, error) {
	id, err := Client.Get(Ctx, refreshKey(token)).Uint64()
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// RevokeRefreshToken drops a refresh token, used at logout.
func RevokeRefreshToken(token string) error {
	return Client.Del(Ctx, refreshKey(token)).Err()
}
