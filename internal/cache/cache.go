package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/ticketstore/internal/models"
)

// Cache stores unfiltered catalog listings per ticket type.
type Cache interface {
	Get(ctx context.Context, kind models.TicketType) ([]models.Ticket, bool)
	Set(ctx context.Context, kind models.TicketType, tickets []models.Ticket) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      5 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewRedisCacheWithClient(client, cfg.TTL), nil
}

// NewRedisCacheWithClient wraps an already configured client.
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, kind models.TicketType) ([]models.Ticket, bool) {
	data, err := c.client.Get(ctx, Key(kind)).Bytes()
	if err != nil {
		return nil, false
	}

	var tickets []models.Ticket
	if err := json.Unmarshal(data, &tickets); err != nil {
		return nil, false
	}

	return tickets, true
}

func (c *RedisCache) Set(ctx context.Context, kind models.TicketType, tickets []models.Ticket) error {
	data, err := json.Marshal(tickets)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, Key(kind), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, kind models.TicketType) ([]models.Ticket, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, kind models.TicketType, tickets []models.Ticket) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func Key(kind models.TicketType) string {
	return "tickets:" + string(kind)
}
