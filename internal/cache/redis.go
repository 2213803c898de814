package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/planepal/config"
	"github.com/Domenick1991/planepal/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.ScheduledFlight, error) {
	var flights []domain.ScheduledFlight
	if err := c.get(ctx, flightsKey(), &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.ScheduledFlight) error {
	return c.set(ctx, flightsKey(), flights)
}

func (c *RedisCache) GetAirlines(ctx context.Context) ([]domain.Airline, error) {
	var airlines []domain.Airline
	if err := c.get(ctx, airlinesKey(), &airlines); err != nil {
		return nil, err
	}
	return airlines, nil
}

func (c *RedisCache) SetAirlines(ctx context.Context, airlines []domain.Airline) error {
	return c.set(ctx, airlinesKey(), airlines)
}

func (c *RedisCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	var airports []domain.Airport
	if err := c.get(ctx, airportsKey(), &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (c *RedisCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	return c.set(ctx, airportsKey(), airports)
}

// InvalidateCatalog drops all three list keys; the synchronizer calls it
// after appending fresh records.
func (c *RedisCache) InvalidateCatalog(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey(), airlinesKey(), airportsKey()).Err()
}

func (c *RedisCache) get(ctx context.Context, key string, out interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, out)
}

func (c *RedisCache) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func airlinesKey() string {
	return "cache:airlines"
}

func airportsKey() string {
	return "cache:airports"
}
