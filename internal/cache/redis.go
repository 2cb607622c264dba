package cache

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Dashboard cache keys. Every key embeds the current data version, so a
// version bump on any charge/payment write leaves readers with fresh data
// without explicit key enumeration.
const (
	versionKey = "billing:version"

	MetricsKeyFmt       = "dashboard:metrics:v%d"
	ChurnSeriesKeyFmt   = "dashboard:churn:v%d"
	WeeklyClientsKeyFmt = "dashboard:weekly:v%d"
)

var client *redis.Client

// Init initializes the Redis connection
func Init() error {
	// K8s sets REDIS_SERVICE_HOST and REDIS_SERVICE_PORT for services
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// DataVersion returns the current billing data version. 0 when Redis is
// unavailable, which makes every cache lookup a miss.
func DataVersion(ctx context.Context) int64 {
	if client == nil {
		return 0
	}
	v, err := client.Get(ctx, versionKey).Int64()
	if err != nil {
		return 0
	}
	return v
}

// BumpDataVersion invalidates all versioned caches. Called on every
// charge or payment mutation so dashboards never serve stale totals.
func BumpDataVersion(ctx context.Context) {
	if client == nil {
		return
	}
	client.Incr(ctx, versionKey)
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
