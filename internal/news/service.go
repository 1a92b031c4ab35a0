// Package news collects recent financial headlines used as optional context
// for the narrative prompt. Headlines never feed the rule-based scorer.
package news

import (
	"context"
	"sync"
	"time"

	"market-trend-analyzer/internal/store"
)

// Service provides cached headline lookups per ticker
type Service struct {
	scraper *Scraper
	cache   *headlineCache
	cfg     *ServiceConfig
}

// ServiceConfig configures the headline service
type ServiceConfig struct {
	MaxHeadlines   int
	CacheDuration  time.Duration
	ScraperTimeout time.Duration
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		MaxHeadlines:   10,
		CacheDuration:  1 * time.Hour,
		ScraperTimeout: 30 * time.Second,
	}
}

// FromConfig builds a headline service from the application config, or nil
// when news context is disabled.
func FromConfig(cfg *store.Config) *Service {
	if !cfg.News.Enabled {
		return nil
	}
	return NewService(&ServiceConfig{
		MaxHeadlines:   cfg.News.MaxHeadlines,
		CacheDuration:  time.Duration(cfg.News.CacheMinutes) * time.Minute,
		ScraperTimeout: 30 * time.Second,
	})
}

// NewService creates a headline service
func NewService(cfg *ServiceConfig) *Service {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	return &Service{
		scraper: NewScraper(cfg.ScraperTimeout),
		cache:   newHeadlineCache(cfg.CacheDuration),
		cfg:     cfg,
	}
}

// Headlines returns recent headline titles for a ticker, serving from cache
// when fresh.
func (s *Service) Headlines(ctx context.Context, symbol string) ([]string, error) {
	if cached, ok := s.cache.get(symbol); ok {
		return cached, nil
	}

	articles, err := s.scraper.Scrape(ctx, symbol, s.cfg.MaxHeadlines)
	if err != nil {
		return nil, err
	}

	headlines := make([]string, 0, len(articles))
	for _, a := range articles {
		headlines = append(headlines, a.Title)
	}
	s.cache.set(symbol, headlines)
	return headlines, nil
}

// headlineCache stores headline lists temporarily
type headlineCache struct {
	mu   sync.RWMutex
	data map[string]*cacheEntry
	ttl  time.Duration
}

type cacheEntry struct {
	headlines []string
	timestamp time.Time
}

func newHeadlineCache(ttl time.Duration) *headlineCache {
	cache := &headlineCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
	}
	go cache.cleanupLoop()
	return cache
}

func (c *headlineCache) get(symbol string) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[symbol]
	if !exists {
		return nil, false
	}
	if time.Since(entry.timestamp) > c.ttl {
		return nil, false
	}
	return entry.headlines, true
}

func (c *headlineCache) set(symbol string, headlines []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[symbol] = &cacheEntry{
		headlines: headlines,
		timestamp: time.Now(),
	}
}

func (c *headlineCache) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *headlineCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for symbol, entry := range c.data {
		if now.Sub(entry.timestamp) > c.ttl {
			delete(c.data, symbol)
		}
	}
}
