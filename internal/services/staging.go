package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
)

// StagingWindow is how long a staged-removal set survives without activity.
// An abandoned edit simply lets its set expire; nothing durable changes.
const StagingWindow = time.Hour

// StagingStore holds session-scoped sets of gallery ids staged for removal.
// Keys are per editing session, so concurrent editors of the same item never
// see each other's staged lists.
type StagingStore interface {
	Get(key string) ([]string, error)
	// Add stages an id; duplicates are ignored and the expiry window restarts.
	Add(key, galleryID string) error
	Clear(key string) error
}

var (
	stagingStore StagingStore
	stagingOnce  sync.Once
)

// InitStaging installs the process-wide staging store. Called once from main;
// if never called, Staging falls back to an in-memory store.
func InitStaging(store StagingStore) {
	stagingStore = store
}

func Staging() StagingStore {
	stagingOnce.Do(func() {
		if stagingStore == nil {
			stagingStore = NewMemoryStagingStore(StagingWindow)
		}
	})
	return stagingStore
}

type stagingEntry struct {
	ids       []string
	expiresAt time.Time
}

// MemoryStagingStore is the default backend: an LRU cache with per-entry
// expiry, suitable for a single-process deployment.
type MemoryStagingStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	cache *lru.Cache[string, stagingEntry]
}

func NewMemoryStagingStore(ttl time.Duration) *MemoryStagingStore {
	l, err := lru.New[string, stagingEntry](512)
	if err != nil {
		log.Fatalf("Failed to create staging cache: %v", err)
	}
	return &MemoryStagingStore{ttl: ttl, cache: l}
}

func (s *MemoryStagingStore) Get(key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.cache.Get(key)
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.cache.Remove(key)
		return nil, nil
	}
	ids := make([]string, len(entry.ids))
	copy(ids, entry.ids)
	return ids, nil
}

func (s *MemoryStagingStore) Add(key, galleryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	if entry, ok := s.cache.Get(key); ok && time.Now().Before(entry.expiresAt) {
		ids = entry.ids
	}
	for _, id := range ids {
		if id == galleryID {
			// Already staged; just extend the window.
			s.cache.Add(key, stagingEntry{ids: ids, expiresAt: time.Now().Add(s.ttl)})
			return nil
		}
	}
	ids = append(ids, galleryID)
	s.cache.Add(key, stagingEntry{ids: ids, expiresAt: time.Now().Add(s.ttl)})
	return nil
}

func (s *MemoryStagingStore) Clear(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Remove(key)
	return nil
}

// RedisStagingStore keeps staged sets in redis with a native TTL, for
// deployments running more than one process.
type RedisStagingStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStagingStore(url string, ttl time.Duration) (*RedisStagingStore, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	log.Println("Staging store connected to redis")
	return &RedisStagingStore{client: client, ttl: ttl}, nil
}

func (s *RedisStagingStore) Get(key string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ids, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("read staged set: %w", err)
	}
	return ids, nil
}

func (s *RedisStagingStore) Add(key, galleryID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, key, galleryID)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("stage gallery: %w", err)
	}
	return nil
}

func (s *RedisStagingStore) Clear(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("clear staged set: %w", err)
	}
	return nil
}
