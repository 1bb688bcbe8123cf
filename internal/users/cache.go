package users

import (
	"context"
	"time"

	"github.com/2beens/bloghub/internal/telemetry/metrics"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

var _ Directory = (*CachedDirectory)(nil)

// CachedDirectory caches positive UserExists answers. Users are never
// deleted, so a cached "exists" can not go stale; misses always reach next.
type CachedDirectory struct {
	next       Directory
	cache      *freecache.Cache
	ttlSeconds int
	metrics    *metrics.Manager
}

func NewCachedDirectory(next Directory, sizeMB int, ttl time.Duration, metricsManager *metrics.Manager) *CachedDirectory {
	return &CachedDirectory{
		next:       next,
		cache:      freecache.NewCache(sizeMB * 1024 * 1024),
		ttlSeconds: int(ttl.Seconds()),
		metrics:    metricsManager,
	}
}

func (d *CachedDirectory) UserExists(ctx context.Context, username string) (bool, error) {
	key := []byte(username)
	if _, err := d.cache.Get(key); err == nil {
		d.countLookup("hit")
		return true, nil
	}
	d.countLookup("miss")

	exists, err := d.next.UserExists(ctx, username)
	if err != nil {
		return false, err
	}

	if exists {
		if err := d.cache.Set(key, []byte{1}, d.ttlSeconds); err != nil {
			log.Warnf("cache user [%s]: %s", username, err)
		}
	}

	return exists, nil
}

func (d *CachedDirectory) EntryCount() int64 {
	return d.cache.EntryCount()
}

func (d *CachedDirectory) countLookup(result string) {
	if d.metrics != nil {
		d.metrics.CounterUserCacheLookups.WithLabelValues(result).Inc()
	}
}
