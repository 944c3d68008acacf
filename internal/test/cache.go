package test

import (
	"context"
	"sync"
	"time"
)

// CacheStub is an in-memory cache recording reads and writes.
type CacheStub struct {
	GetFn func(context.Context, string) (string, error)
	SetFn func(context.Context, string, string, time.Duration) error

	mu     sync.Mutex
	Values map[string]string
	Sets   int
	Gets   int
}

// Get returns a stored value or an empty-string miss.
func (s *CacheStub) Get(ctx context.Context, key string) (string, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Gets++
	return s.Values[key], nil
}

// Set stores a value ignoring the TTL.
func (s *CacheStub) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if s.SetFn != nil {
		return s.SetFn(ctx, key, value, ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	s.Values[key] = value
	s.Sets++
	return nil
}
