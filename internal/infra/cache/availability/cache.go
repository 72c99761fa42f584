// Package availability — опциональный redis-кеш выдачи свободных слотов.
//
// Чтения доступности допускают небольшую устарелость: источником истины
// по конфликтам является путь записи, который перепроверяет пересечения
// на коммите. Поэтому кеш живёт на коротком TTL и не инвалидируется
// при записях.
package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCache возвращается при ошибках взаимодействия с redis.
// Вызывающий код логирует её и продолжает без кеша.
var ErrCache = errors.New("availability.cache: cache error")

// Key ключ кеша — все параметры, от которых зависит выдача
type Key struct {
	BusinessID int64
	ServiceID  int64
	Day        string // YYYY-MM-DD
	OpenHour   int
	CloseHour  int
}

// String формирует строковый ключ redis
func (k Key) String() string {
	return fmt.Sprintf("availability:%d:%d:%s:%d-%d",
		k.BusinessID, k.ServiceID, k.Day, k.OpenHour, k.CloseHour)
}

// Cache кеш свободных слотов поверх redis
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает кеш с заданным TTL
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает закешированную выдачу слотов.
// Второй результат false — промах кеша (не ошибка).
func (c *Cache) Get(ctx context.Context, key Key) ([]time.Time, bool, error) {
	payload, err := c.client.Get(ctx, key.String()).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get: %v", ErrCache, err)
	}

	var slots []time.Time
	if err := json.Unmarshal(payload, &slots); err != nil {
		// Битое значение считаем промахом — его перезапишет свежая выдача
		return nil, false, fmt.Errorf("%w: Get - unmarshal: %v", ErrCache, err)
	}

	return slots, true, nil
}

// Set сохраняет выдачу слотов с TTL кеша
func (c *Cache) Set(ctx context.Context, key Key, slots []time.Time) error {
	payload, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %v", ErrCache, err)
	}

	if err := c.client.Set(ctx, key.String(), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCache, err)
	}

	return nil
}
