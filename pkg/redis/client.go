package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config holds redis connection settings. Enabled=false turns the
// client into a disconnected stub so single-instance deployments can
// run without redis at all.
type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	Enabled      bool
	PoolSize     int
	MinIdleConns int
}

type Client struct {
	rdb     *redis.Client
	enabled bool
	logger  *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if !cfg.Enabled {
		logger.Info("Redis disabled, running without external OTP store")
		return &Client{enabled: false, logger: logger}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	client := &Client{rdb: rdb, enabled: true, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		logger.Error("Failed to connect to Redis",
			zap.String("host", cfg.Host),
			zap.Int("port", cfg.Port),
			zap.Error(err),
		)
	} else {
		logger.Info("Connected to Redis",
			zap.String("host", cfg.Host),
			zap.Int("port", cfg.Port),
			zap.Int("database", cfg.DB),
		)
	}

	return client
}

func (c *Client) IsEnabled() bool {
	return c.enabled
}

func (c *Client) Ping(ctx context.Context) error {
	if !c.enabled {
		return fmt.Errorf("redis disabled")
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if !c.enabled {
		return nil
	}
	return c.rdb.Close()
}

// Set stores a value under key with a TTL.
func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if !c.enabled {
		return fmt.Errorf("redis disabled")
	}
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Get retrieves a value. A cache miss returns ("", false, nil).
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	if !c.enabled {
		return "", false, fmt.Errorf("redis disabled")
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key: %w", err)
	}
	return val, true, nil
}

// Delete removes a key.
func (c *Client) Delete(ctx context.Context, key string) error {
	if !c.enabled {
		return fmt.Errorf("redis disabled")
	}
	return c.rdb.Del(ctx, key).Err()
}
