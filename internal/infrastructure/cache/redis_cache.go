package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/pos-api/internal/application/treasury"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

var _ treasury.BalanceCache = (*RedisBalanceCache)(nil)

const balanceKeyPrefix = "treasury:balance:"

// RedisBalanceCache cachea el agregado de tesorería en Redis, un key por
// canal de pago ("" = todos). La cascada invalida todos los keys tras cada
// contabilización.
type RedisBalanceCache struct {
	client *redis.Client
}

// NewRedisBalanceCache construye el caché con su cliente Redis.
func NewRedisBalanceCache(addr, password string, db int) *RedisBalanceCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisBalanceCache{client: client}
}

// Ping verifica la conexión.
func (c *RedisBalanceCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (c *RedisBalanceCache) Close() error {
	return c.client.Close()
}

// Get devuelve el agregado cacheado del canal, si existe.
func (c *RedisBalanceCache) Get(ctx context.Context, method string) (*entity.TreasuryBalance, bool, error) {
	val, err := c.client.Get(ctx, balanceKeyPrefix+method).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var balance entity.TreasuryBalance
	if err := json.Unmarshal([]byte(val), &balance); err != nil {
		return nil, false, err
	}
	return &balance, true, nil
}

// Set guarda el agregado del canal con TTL.
func (c *RedisBalanceCache) Set(ctx context.Context, method string, balance *entity.TreasuryBalance, ttl time.Duration) error {
	if balance == nil {
		return nil
	}
	payload, err := json.Marshal(balance)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, balanceKeyPrefix+method, payload, ttl).Err()
}

// Invalidate descarta todos los agregados cacheados.
func (c *RedisBalanceCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, balanceKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
