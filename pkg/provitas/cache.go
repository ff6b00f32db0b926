// Package provitas looks up district productivity benchmarks from
// provitas_kab and memoizes them.
package provitas

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"indash/entities"
	"indash/pkg/metrics"
	"indash/pkg/query/repository"
)

const districtIDLength = 4

// LookupTimeout bounds one shared provitas_kab query.
const LookupTimeout = 20 * time.Second

// Cache memoizes found benchmarks per district code for the life of the
// process. There is no eviction; the key space is the ~500 districts.
// Failed and empty lookups are not stored, so they are retried next time.
type Cache struct {
	exec    repository.Executor
	log     *zap.Logger
	metrics *metrics.Metrics

	mu      sync.RWMutex
	entries map[string]entities.CropProductivity
	group   singleflight.Group
}

func NewCache(exec repository.Executor, log *zap.Logger, m *metrics.Metrics) *Cache {
	return &Cache{
		exec:    exec,
		log:     log.Named("provitas"),
		metrics: m,
		entries: map[string]entities.CropProductivity{},
	}
}

// Get returns the benchmark for the district enclosing locationID, or nil
// when the id is above district level or the lookup finds nothing or fails.
// Failures are logged, never returned.
func (c *Cache) Get(ctx context.Context, locationID string) *entities.CropProductivity {
	if len(locationID) < districtIDLength {
		return nil
	}
	kab := locationID[:districtIDLength]
	if p, ok := c.cached(kab); ok {
		c.metrics.ProvitasLookup("hit")
		return &p
	}

	// The fetch is detached from the caller that starts it; every caller
	// waits on its own ctx.
	ch := c.group.DoChan(kab, func() (any, error) {
		if p, ok := c.cached(kab); ok {
			return &p, nil
		}
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LookupTimeout)
		defer cancel()
		p, err := c.fetch(fctx, kab)
		if err != nil || p == nil {
			return p, err
		}
		c.mu.Lock()
		c.entries[kab] = *p
		c.mu.Unlock()
		return p, nil
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		c.metrics.ProvitasLookup("cancelled")
		return nil
	case res = <-ch:
	}
	v, err := res.Val, res.Err
	if err != nil {
		c.metrics.ProvitasLookup("error")
		c.log.Warn("productivity lookup failed, using row or default values",
			zap.String("district", kab), zap.Error(err))
		return nil
	}
	c.metrics.ProvitasLookup("miss")
	p, _ := v.(*entities.CropProductivity)
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

// Len reports the number of memoized districts.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) cached(kab string) (entities.CropProductivity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.entries[kab]
	return p, ok
}

func (c *Cache) fetch(ctx context.Context, kab string) (*entities.CropProductivity, error) {
	sql := "SELECT PADI, JAGUNG, KEDELAI FROM provitas_kab WHERE ID_KABU = " + repository.Quote(kab)
	resp, err := c.exec.Execute(ctx, sql, repository.SourcePlanning)
	if err != nil {
		return nil, fmt.Errorf("provitas_kab %s: %w", kab, err)
	}
	row, ok := resp.First()
	if !ok {
		return nil, nil
	}
	return &entities.CropProductivity{
		Rice:    row.Float("PADI"),
		Corn:    row.Float("JAGUNG"),
		Soybean: row.Float("KEDELAI"),
	}, nil
}
