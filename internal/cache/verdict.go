package cache

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/ppiankov/chemscreen/internal/model"
)

// VerdictCache stores validity verdicts on top of a byte Cache
type VerdictCache struct {
	store Cache
	ttl   time.Duration
}

// NewVerdictCache wraps store; ttl 0 defers to the store's default
func NewVerdictCache(store Cache, ttl time.Duration) *VerdictCache {
	return &VerdictCache{store: store, ttl: ttl}
}

// Get returns a cached verdict marked as Cached
func (c *VerdictCache) Get(key string) (*model.Verdict, bool) {
	data, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	var v model.Verdict
	if err := json.Unmarshal(data, &v); err != nil {
		_ = c.store.Delete(key)
		return nil, false
	}
	v.Cached = true
	return &v, true
}

// Put stores a verdict
func (c *VerdictCache) Put(key string, v *model.Verdict) error {
	stored := *v
	stored.Cached = false
	data, err := json.Marshal(&stored)
	if err != nil {
		return errors.Wrapf(err, "encode verdict for %s", v.Formula)
	}
	return c.store.Set(key, data, c.ttl)
}
