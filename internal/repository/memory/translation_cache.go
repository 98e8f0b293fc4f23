package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// TranslationCache remembers English renderings of Japanese replies so that
// re-sending an unchanged reply does not cost another model call. Keys are
// SHA-256 digests; the source text itself is not stored.
type TranslationCache struct {
	cache *cache.Cache
}

// NewTranslationCache returns nil when ttl is not positive; a nil cache is a
// valid, always-missing cache.
func NewTranslationCache(ttl time.Duration) *TranslationCache {
	if ttl <= 0 {
		return nil
	}
	// Purge expired items every ttl, but at least once a minute
	cleanup := ttl
	if cleanup > time.Minute {
		cleanup = time.Minute
	}
	return &TranslationCache{
		cache: cache.New(ttl, cleanup),
	}
}

func (r *TranslationCache) Save(source, translated string) {
	if r == nil {
		return
	}
	r.cache.Set(key(source), translated, cache.DefaultExpiration)
}

func (r *TranslationCache) Get(source string) (string, bool) {
	if r == nil {
		return "", false
	}
	if x, found := r.cache.Get(key(source)); found {
		return x.(string), true
	}
	return "", false
}

func (r *TranslationCache) Len() int {
	if r == nil {
		return 0
	}
	return r.cache.ItemCount()
}

func key(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
