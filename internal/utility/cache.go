package utility

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cacheEntry giữ payload cùng thời điểm tính
type cacheEntry struct {
	payload  any
	cachedAt time.Time
}

// Cache là cache trong tiến trình theo key, mỗi entry hợp lệ khi now - cachedAt < ttl.
// Entry hết hạn không bị xóa chủ động, lần đọc sau sẽ tính lại và ghi đè.
type Cache struct {
	items map[string]cacheEntry
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time

	group  *singleflight.Group
	onHit  func(key string)
	onMiss func(key string)
}

// CacheOption cấu hình Cache khi khởi tạo
type CacheOption func(*Cache)

// WithClock thay đồng hồ (dùng trong test)
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// WithSingleFlight gộp các lần tính cùng key đang chạy đồng thời thành một
func WithSingleFlight() CacheOption {
	return func(c *Cache) {
		c.group = &singleflight.Group{}
	}
}

// WithObserver gắn callback khi hit/miss (metrics)
func WithObserver(onHit, onMiss func(key string)) CacheOption {
	return func(c *Cache) {
		c.onHit = onHit
		c.onMiss = onMiss
	}
}

// NewCache tạo cache với ttl mặc định
func NewCache(ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{
		items: make(map[string]cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set lưu giá trị vào cache với thời điểm hiện tại
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheEntry{payload: value, cachedAt: c.now()}
}

// Get lấy giá trị còn hạn theo ttl mặc định
func (c *Cache) Get(key string) (any, bool) {
	return c.get(key, c.ttl)
}

func (c *Cache) get(key string, ttl time.Duration) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, exists := c.items[key]
	if !exists || c.now().Sub(entry.cachedAt) >= ttl {
		return nil, false
	}
	return entry.payload, true
}

// GetOrCompute trả payload còn hạn; nếu không thì gọi compute, lưu và trả kết quả.
// ttl <= 0 dùng ttl mặc định. compute lỗi thì không lưu.
func (c *Cache) GetOrCompute(key string, ttl time.Duration, compute func() (any, error)) (any, error) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	if payload, ok := c.get(key, ttl); ok {
		c.observe(c.onHit, key)
		return payload, nil
	}
	c.observe(c.onMiss, key)

	load := func() (any, error) {
		// Một lần tính khác có thể vừa ghi xong trong lúc chờ
		if payload, ok := c.get(key, ttl); ok {
			return payload, nil
		}
		payload, err := compute()
		if err != nil {
			return nil, err
		}
		c.Set(key, payload)
		return payload, nil
	}

	if c.group == nil {
		return load()
	}
	payload, err, _ := c.group.Do(key, load)
	return payload, err
}

// Refresh luôn gọi compute rồi ghi đè entry, không quan tâm entry cũ còn hạn hay không.
// compute lỗi thì entry cũ giữ nguyên. Các lần Refresh cùng key chạy đồng thời được gộp khi bật single-flight.
func (c *Cache) Refresh(key string, compute func() (any, error)) (any, error) {
	load := func() (any, error) {
		payload, err := compute()
		if err != nil {
			return nil, err
		}
		c.Set(key, payload)
		return payload, nil
	}

	if c.group == nil {
		return load()
	}
	payload, err, _ := c.group.Do("refresh:"+key, load)
	return payload, err
}

// Purge xóa toàn bộ entries
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]cacheEntry)
}

// Len số entry đang giữ (kể cả entry đã hết hạn)
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) observe(fn func(string), key string) {
	if fn != nil {
		fn(key)
	}
}

// GetOrComputeAs là bản có kiểu của GetOrCompute
func GetOrComputeAs[T any](c *Cache, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	payload, err := c.GetOrCompute(key, ttl, func() (any, error) {
		return compute()
	})
	return typedPayload[T](key, payload, err)
}

// RefreshAs là bản có kiểu của Refresh
func RefreshAs[T any](c *Cache, key string, compute func() (T, error)) (T, error) {
	payload, err := c.Refresh(key, func() (any, error) {
		return compute()
	})
	return typedPayload[T](key, payload, err)
}

func typedPayload[T any](key string, payload any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := payload.(T)
	if !ok {
		return zero, fmt.Errorf("cache key %s chứa kiểu %T, cần %T", key, payload, zero)
	}
	return typed, nil
}
