package cache

import (
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// The cache holds analysis results that are expensive to recompute, such as
// a solved position or a charge selection, for the lifetime of the process.
// Entries are keyed by a hash of everything the result depends on.

type cache struct {
	sync.Mutex
	objects map[uint64]any
	loading singleflight.Group
}

// GlobalObjectCache is the process-wide cache.
var GlobalObjectCache *cache

var globalMu sync.Mutex

// Key hashes the parts that identify a result. Parts are separated so that
// ("ab", "c") and ("a", "bc") get different keys.
func Key(parts ...string) uint64 {
	return xxhash.Sum64([]byte(strings.Join(parts, "\x00")))
}

func (c *cache) lookup(key uint64) (any, bool) {
	c.Lock()
	defer c.Unlock()
	obj, ok := c.objects[key]
	return obj, ok
}

// get returns the object for key and whether it was already cached. The
// lock is not held while load runs; concurrent misses on one key share a
// single load.
func (c *cache) get(key uint64, load func() (any, error)) (any, bool, error) {
	if obj, ok := c.lookup(key); ok {
		log.Debug().Uint64("key", key).Msg("getting-obj-from-cache")
		return obj, true, nil
	}
	obj, err, _ := c.loading.Do(strconv.FormatUint(key, 16), func() (any, error) {
		if obj, ok := c.lookup(key); ok {
			return obj, nil
		}
		log.Debug().Uint64("key", key).Msg("loading-into-cache")
		obj, err := load()
		if err != nil {
			return nil, err
		}
		c.Lock()
		c.objects[key] = obj
		c.Unlock()
		return obj, nil
	})
	if err != nil {
		return nil, false, err
	}
	return obj, false, nil
}

func CreateGlobalObjectCache() {
	globalMu.Lock()
	defer globalMu.Unlock()
	GlobalObjectCache = &cache{objects: make(map[uint64]any)}
}

func globalCache() *cache {
	globalMu.Lock()
	defer globalMu.Unlock()
	if GlobalObjectCache == nil {
		GlobalObjectCache = &cache{objects: make(map[uint64]any)}
	}
	return GlobalObjectCache
}

// Load returns the cached value for key, calling load to compute it on a
// miss. hit reports whether the value came from the cache. Failed loads are
// not cached.
func Load[T any](key uint64, load func() (T, error)) (v T, hit bool, err error) {
	obj, hit, err := globalCache().get(key, func() (any, error) { return load() })
	if err != nil {
		return v, false, err
	}
	return obj.(T), hit, nil
}

// Len is the number of cached values.
func Len() int {
	c := globalCache()
	c.Lock()
	defer c.Unlock()
	return len(c.objects)
}
