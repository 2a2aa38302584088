package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Entry is one cached value. Timestamp is when the value was written, not
// when it expires; staleness is judged against the caller's TTL so one
// entry can be fresh for one caller and stale for another.
type Entry struct {
	Timestamp time.Time
	Data      json.RawMessage
}

// Store is the durable key-value layer under the cache. Get returns
// (nil, nil) on a missing key: absence is not an error.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Put(ctx context.Context, key string, e Entry) error
	Delete(ctx context.Context, key string) error
	Sweep(ctx context.Context, maxAge time.Duration) error
}

type cacheRow struct {
	Key       string    `gorm:"column:key;primaryKey;size:255"`
	Timestamp time.Time `gorm:"column:timestamp"`
	Data      []byte    `gorm:"column:data"`
}

func (cacheRow) TableName() string { return "cache_entries" }

// DBStore keeps entries in the local database. Writes are last-writer-wins;
// the cache is advisory, so racing writers need no lock.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Migrate() error {
	return s.db.AutoMigrate(&cacheRow{})
}

func (s *DBStore) Get(ctx context.Context, key string) (*Entry, error) {
	var row cacheRow
	tx := s.db.WithContext(ctx).First(&row, "key = ?", key)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &Entry{Timestamp: row.Timestamp, Data: row.Data}, nil
}

func (s *DBStore) Put(ctx context.Context, key string, e Entry) error {
	row := cacheRow{Key: key, Timestamp: e.Timestamp, Data: e.Data}
	return s.db.WithContext(ctx).Save(&row).Error
}

func (s *DBStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&cacheRow{}, "key = ?", key).Error
}

// Sweep drops entries older than maxAge. Run at startup to bound growth.
func (s *DBStore) Sweep(ctx context.Context, maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)
	return s.db.WithContext(ctx).Delete(&cacheRow{}, "timestamp < ?", cutoff).Error
}

// MemStore is an in-memory Store for tests and single-process runs.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string]Entry)}
}

func (s *MemStore) Get(_ context.Context, key string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	cp := e
	return &cp, nil
}

func (s *MemStore) Put(_ context.Context, key string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = e
	return nil
}

func (s *MemStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemStore) Sweep(_ context.Context, maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.entries {
		if e.Timestamp.Before(cutoff) {
			delete(s.entries, k)
		}
	}
	return nil
}
