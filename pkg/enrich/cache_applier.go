package enrich

import (
	"log"
	"sync"
	"time"
)

// CacheApplier keeps one Applier per source id and cleans up idle ones.
type CacheApplier struct {
	applierMap      map[string]*Applier
	mu              sync.RWMutex
	shutdownCh      chan struct{}
	applierIdleTTL  time.Duration // how long an applier can be idle before cleanup
	cleanupInterval time.Duration // how often to check for idle appliers
}

func NewCacheApplier() *CacheApplier {
	// Default: clean up appliers idle for 2 hours, check every 5 minutes
	return NewCacheApplierWithConfig(2*time.Hour, 5*time.Minute)
}

// NewCacheApplierWithConfig creates a cache with custom idle timeout and cleanup interval
func NewCacheApplierWithConfig(applierIdleTTL, cleanupInterval time.Duration) *CacheApplier {
	ca := &CacheApplier{
		applierMap:      make(map[string]*Applier),
		shutdownCh:      make(chan struct{}),
		applierIdleTTL:  applierIdleTTL,
		cleanupInterval: cleanupInterval,
	}
	go ca.cleanupLoop()
	return ca
}

func (ca *CacheApplier) Get(id string) *Applier {
	ca.mu.RLock()
	defer ca.mu.RUnlock()
	return ca.applierMap[id]
}

func (ca *CacheApplier) GetOrSet(id string, fn func() (*Applier, error)) (*Applier, error) {
	ca.mu.Lock()
	defer ca.mu.Unlock()
	if applier, ok := ca.applierMap[id]; ok {
		return applier, nil
	}
	applier, err := fn()
	if err != nil {
		return nil, err
	}
	ca.applierMap[id] = applier
	return applier, nil
}

func (ca *CacheApplier) Exists(id string) bool {
	ca.mu.RLock()
	defer ca.mu.RUnlock()
	_, ok := ca.applierMap[id]
	return ok
}

// Remove removes an Applier, logging its accumulated statistics
func (ca *CacheApplier) Remove(id string) {
	ca.mu.Lock()
	defer ca.mu.Unlock()
	if applier, ok := ca.applierMap[id]; ok {
		log.Printf("[CacheApplier] Removing applier for source: %s (%s)", id, FormatStatistics(applier.Statistics))
		delete(ca.applierMap, id)
	}
}

// Shutdown stops the cleanup loop and drops all appliers
func (ca *CacheApplier) Shutdown() {
	log.Printf("[CacheApplier] Shutting down cache with %d active appliers", len(ca.applierMap))
	close(ca.shutdownCh)

	ca.mu.Lock()
	defer ca.mu.Unlock()
	for id, applier := range ca.applierMap {
		log.Printf("[CacheApplier] Dropping applier for source: %s (%s)", id, FormatStatistics(applier.Statistics))
	}
	ca.applierMap = make(map[string]*Applier)
}

// cleanupLoop periodically checks for idle appliers and removes them
func (ca *CacheApplier) cleanupLoop() {
	ticker := time.NewTicker(ca.cleanupInterval)
	defer ticker.Stop()

	log.Printf("[CacheApplier] Started cleanup loop (check every %v, idle threshold: %v)",
		ca.cleanupInterval, ca.applierIdleTTL)

	for {
		select {
		case <-ticker.C:
			ca.cleanupIdleAppliers()
		case <-ca.shutdownCh:
			log.Println("[CacheApplier] Cleanup loop shutting down")
			return
		}
	}
}

// cleanupIdleAppliers removes appliers that have been idle for longer than applierIdleTTL
func (ca *CacheApplier) cleanupIdleAppliers() {
	ca.mu.Lock()
	defer ca.mu.Unlock()

	var toRemove []string
	for id, applier := range ca.applierMap {
		if applier.IsIdle(ca.applierIdleTTL) {
			toRemove = append(toRemove, id)
		}
	}

	for _, id := range toRemove {
		if applier, ok := ca.applierMap[id]; ok {
			log.Printf("[CacheApplier] Removing idle applier for source: %s (idle threshold: %v, %s)",
				id, ca.applierIdleTTL, FormatStatistics(applier.Statistics))
			delete(ca.applierMap, id)
		}
	}

	if len(toRemove) > 0 {
		log.Printf("[CacheApplier] Cleanup complete. Active appliers: %d", len(ca.applierMap))
	}
}
