package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/emirhankarahan/flyticket/config"
	"github.com/emirhankarahan/flyticket/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	citiesTTL  time.Duration
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, citiesTTL, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		citiesTTL:  citiesTTL,
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) GetCities(ctx context.Context) ([]domain.City, error) {
	data, err := c.client.Get(ctx, citiesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var cities []domain.City
	if err := json.Unmarshal(data, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (c *RedisCache) SetCities(ctx context.Context, cities []domain.City) error {
	payload, err := json.Marshal(cities)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, citiesKey(), payload, c.citiesTTL).Err()
}

func (c *RedisCache) GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey(filter)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, filter domain.FlightFilter, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(filter), payload, c.flightsTTL).Err()
}

// InvalidateFlights drops every cached flight listing. Any flight mutation
// or booking changes the seat counters the listings carry.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "cache:flights:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *RedisCache) AcquireSeatLock(ctx context.Context, flightID, seatNumber string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, seatLockKey(flightID, seatNumber), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSeatLock(ctx context.Context, flightID, seatNumber string) error {
	return c.client.Del(ctx, seatLockKey(flightID, seatNumber)).Err()
}

func citiesKey() string {
	return "cache:cities"
}

func flightsKey(f domain.FlightFilter) string {
	return fmt.Sprintf("cache:flights:%s:%s:%s", f.FromCity, f.ToCity, f.Date)
}

func seatLockKey(flightID, seatNumber string) string {
	return fmt.Sprintf("lock:flight:%s:seat:%s", flightID, seatNumber)
}
