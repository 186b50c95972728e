package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"pds/internal/models"
)

// readCache is a best-effort JSON cache. Redis failures are logged and
// treated as misses so the store stays authoritative.
//
// Each key has a version counter bumped on every invalidation. A fill only
// lands if the version read before loading from the store is unchanged.
type readCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

const versionKeyTTL = 24 * time.Hour

func versionKey(key string) string { return key + ":v" }

func (c readCache) get(ctx context.Context, key string, dst interface{}) bool {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		c.log.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// version returns the current write counter for key. The second result is
// false when Redis is unavailable and the caller must not fill.
func (c readCache) version(ctx context.Context, key string) (string, bool) {
	v, err := c.client.Get(ctx, versionKey(key)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", false
	}
	return v, true
}

// fill stores v under key unless a writer bumped the version since seen was read.
func (c readCache) fill(ctx context.Context, key, seen string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}

	vkey := versionKey(key)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != seen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, vkey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		c.log.Debug("skipped stale cache fill", zap.String("key", key))
	default:
		c.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidate bumps the version and drops the cached entry.
func (c readCache) invalidate(ctx context.Context, key string) {
	vkey := versionKey(key)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, vkey)
		pipe.Expire(ctx, vkey, versionKeyTTL)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		c.log.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

var errStaleFill = errors.New("cache entry changed during fill")

func brandKey(id primitive.ObjectID) string   { return "brand:" + id.Hex() }
func productKey(id primitive.ObjectID) string { return "product:" + id.Hex() }

// CachedBrandRepository caches single-brand reads in Redis.
type CachedBrandRepository struct {
	next  BrandRepository
	cache readCache
}

func NewCachedBrandRepository(next BrandRepository, client *redis.Client, ttl time.Duration, log *zap.Logger) *CachedBrandRepository {
	return &CachedBrandRepository{
		next:  next,
		cache: readCache{client: client, ttl: ttl, log: log},
	}
}

func (r *CachedBrandRepository) GetAll(ctx context.Context) ([]models.Brand, error) {
	return r.next.GetAll(ctx)
}

func (r *CachedBrandRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Brand, error) {
	key := brandKey(id)
	var cached models.Brand
	if r.cache.get(ctx, key, &cached) {
		return &cached, nil
	}

	seen, canFill := r.cache.version(ctx, key)
	brand, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if canFill {
		r.cache.fill(ctx, key, seen, brand)
	}
	return brand, nil
}

func (r *CachedBrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	return r.next.Create(ctx, brand)
}

func (r *CachedBrandRepository) Update(ctx context.Context, brand *models.Brand) error {
	err := r.next.Update(ctx, brand)
	r.cache.invalidate(ctx, brandKey(brand.ID))
	return err
}

func (r *CachedBrandRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := r.next.Delete(ctx, id)
	r.cache.invalidate(ctx, brandKey(id))
	return err
}

// CachedProductRepository caches single-product reads in Redis.
type CachedProductRepository struct {
	next  ProductRepository
	cache readCache
}

func NewCachedProductRepository(next ProductRepository, client *redis.Client, ttl time.Duration, log *zap.Logger) *CachedProductRepository {
	return &CachedProductRepository{
		next:  next,
		cache: readCache{client: client, ttl: ttl, log: log},
	}
}

func (r *CachedProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.next.GetAll(ctx)
}

func (r *CachedProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	key := productKey(id)
	var cached models.Product
	if r.cache.get(ctx, key, &cached) {
		return &cached, nil
	}

	seen, canFill := r.cache.version(ctx, key)
	product, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if canFill {
		r.cache.fill(ctx, key, seen, product)
	}
	return product, nil
}

func (r *CachedProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.next.Create(ctx, product)
}

func (r *CachedProductRepository) Update(ctx context.Context, product *models.Product) error {
	err := r.next.Update(ctx, product)
	r.cache.invalidate(ctx, productKey(product.ID))
	return err
}

func (r *CachedProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := r.next.Delete(ctx, id)
	r.cache.invalidate(ctx, productKey(id))
	return err
}
