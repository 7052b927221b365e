// Package ratelimit throttles proxy traffic per client using token buckets.
// Generation requests burn provider quota, so they get a much tighter budget
// than listing lookups or health checks.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// bucket is a token bucket refilled continuously at rate tokens/second.
type bucket struct {
	mu         sync.Mutex
	capacity   float64
	rate       float64
	tokens     float64
	lastRefill time.Time
}

func newBucket(capacity int, rate float64) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		rate:       rate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (b *bucket) take() (allowed bool, remaining int, resetIn time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		allowed = true
	}
	remaining = int(b.tokens)
	if deficit := 1 - b.tokens; deficit > 0 {
		resetIn = time.Duration(deficit / b.rate * float64(time.Second))
	}
	return allowed, remaining, resetIn
}

// Rule limits one path prefix. A Limit of zero or less means unlimited.
type Rule struct {
	PathPrefix string
	Limit      int
	Window     time.Duration
	Burst      int
}

// DefaultRules budget the two metered endpoints.
func DefaultRules() []Rule {
	return []Rule{
		{PathPrefix: "/api/generate", Limit: 30, Window: time.Minute, Burst: 5},
		{PathPrefix: "/api/jobs", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

// Info reports the limit state for response headers.
type Info struct {
	Limited    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter tracks one token bucket per client and rule.
type Limiter struct {
	mu      sync.Mutex
	rules   []Rule
	buckets map[string]*bucket
	access  map[string]time.Time

	stop   chan struct{}
	ticker *time.Ticker
}

// staleAfter is how long an idle client's bucket survives.
const staleAfter = time.Hour

// NewLimiter creates a limiter. Nil rules mean DefaultRules.
func NewLimiter(rules []Rule) *Limiter {
	if rules == nil {
		rules = DefaultRules()
	}
	l := &Limiter{
		rules:   rules,
		buckets: make(map[string]*bucket),
		access:  make(map[string]time.Time),
		stop:    make(chan struct{}),
		ticker:  time.NewTicker(5 * time.Minute),
	}
	go l.evictLoop()
	return l
}

// Allow reports whether clientID may hit path now.
func (l *Limiter) Allow(clientID, path string) Info {
	var rule *Rule
	for i := range l.rules {
		if strings.HasPrefix(path, l.rules[i].PathPrefix) {
			rule = &l.rules[i]
			break
		}
	}
	if rule == nil || rule.Limit <= 0 {
		return Info{}
	}

	key := clientID + ":" + rule.PathPrefix
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		burst := rule.Burst
		if burst <= 0 {
			burst = rule.Limit
		}
		b = newBucket(burst, float64(rule.Limit)/rule.Window.Seconds())
		l.buckets[key] = b
	}
	l.access[key] = time.Now()
	l.mu.Unlock()

	allowed, remaining, resetIn := b.take()
	info := Info{Limit: rule.Limit, Remaining: remaining}
	if !allowed {
		info.Limited = true
		info.RetryAfter = resetIn
	}
	return info
}

func (l *Limiter) evictLoop() {
	for {
		select {
		case <-l.ticker.C:
			l.evictStale()
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) evictStale() {
	cutoff := time.Now().Add(-staleAfter)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.access {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.access, key)
		}
	}
}

// Stop halts the eviction goroutine.
func (l *Limiter) Stop() {
	l.ticker.Stop()
	close(l.stop)
}
