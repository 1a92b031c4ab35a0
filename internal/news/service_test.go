package news

import (
	"testing"
	"time"

	"market-trend-analyzer/internal/store"
)

func TestHeadlineCache(t *testing.T) {
	cache := newHeadlineCache(100 * time.Millisecond)

	if _, ok := cache.get("AAPL"); ok {
		t.Error("expected miss on empty cache")
	}

	cache.set("AAPL", []string{"Apple beats earnings"})
	got, ok := cache.get("AAPL")
	if !ok || len(got) != 1 || got[0] != "Apple beats earnings" {
		t.Errorf("expected cached headlines, got %v (hit=%v)", got, ok)
	}

	time.Sleep(150 * time.Millisecond)
	if _, ok := cache.get("AAPL"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestHeadlineCacheCleanup(t *testing.T) {
	cache := newHeadlineCache(50 * time.Millisecond)
	cache.set("AAPL", []string{"one"})
	cache.set("MSFT", []string{"two"})

	time.Sleep(80 * time.Millisecond)
	cache.cleanup()

	cache.mu.RLock()
	n := len(cache.data)
	cache.mu.RUnlock()
	if n != 0 {
		t.Errorf("expected expired entries purged, %d remain", n)
	}
}

func TestSearchURL(t *testing.T) {
	source := Source{
		BaseURL:    "https://finance.yahoo.com",
		SearchPath: "/quote/{symbol}/news",
	}
	if got := searchURL(source, "aapl"); got != "https://finance.yahoo.com/quote/AAPL/news" {
		t.Errorf("unexpected url %q", got)
	}
}

func TestFromConfigDisabled(t *testing.T) {
	cfg := &store.Config{}
	if svc := FromConfig(cfg); svc != nil {
		t.Error("expected nil service when news is disabled")
	}
}

func TestFromConfigEnabled(t *testing.T) {
	cfg := &store.Config{}
	cfg.News.Enabled = true
	cfg.News.MaxHeadlines = 5
	cfg.News.CacheMinutes = 30

	svc := FromConfig(cfg)
	if svc == nil {
		t.Fatal("expected service when news is enabled")
	}
	if svc.cfg.MaxHeadlines != 5 {
		t.Errorf("expected max headlines 5, got %d", svc.cfg.MaxHeadlines)
	}
	if svc.cfg.CacheDuration != 30*time.Minute {
		t.Errorf("expected 30m cache, got %v", svc.cfg.CacheDuration)
	}
}

func TestNewServiceDefaults(t *testing.T) {
	svc := NewService(nil)
	if svc.cfg.MaxHeadlines != 10 {
		t.Errorf("expected default max headlines 10, got %d", svc.cfg.MaxHeadlines)
	}
}

func TestHostOf(t *testing.T) {
	if got := hostOf("https://www.marketwatch.com"); got != "www.marketwatch.com" {
		t.Errorf("got %q", got)
	}
}
