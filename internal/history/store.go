package history

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// DefaultKey is the storage key holding the JSON encoded city list.
const DefaultKey = "citySearchHistory"

// StorageGateway is a persistent string key-value store.
type StorageGateway interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Pinger is implemented by gateways backed by a remote server.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is the ordered, duplicate free list of searched city names.
type Store struct {
	mu      sync.RWMutex
	gateway StorageGateway
	key     string
	cities  []string
	logger  *zap.Logger
}

// Load reads the persisted list. A missing or unparsable value yields an
// empty history; storage errors are logged and otherwise ignored.
func Load(ctx context.Context, gateway StorageGateway, key string, logger *zap.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}

	s := &Store{
		gateway: gateway,
		key:     key,
		cities:  []string{},
		logger:  logger,
	}

	raw, found, err := gateway.Get(ctx, key)
	if err != nil {
		logger.Warn("Failed to read search history", zap.String("key", key), zap.Error(err))
		return s
	}
	if !found {
		return s
	}

	var cities []string
	if err := json.Unmarshal([]byte(raw), &cities); err != nil {
		logger.Warn("Discarding unparsable search history", zap.String("key", key), zap.Error(err))
		return s
	}
	if cities != nil {
		s.cities = cities
	}

	logger.Debug("Loaded search history", zap.Int("cities", len(s.cities)))
	return s
}

// Save appends city when it is non-empty and not yet present, then writes the
// whole list back. It reports whether the list changed.
func (s *Store) Save(ctx context.Context, city string) bool {
	if city == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.cities {
		if c == city {
			return false
		}
	}
	s.cities = append(s.cities, city)

	payload, err := json.Marshal(s.cities)
	if err != nil {
		s.logger.Warn("Failed to encode search history", zap.Error(err))
		return true
	}
	if err := s.gateway.Set(ctx, s.key, string(payload)); err != nil {
		s.logger.Warn("Failed to persist search history",
			zap.String("key", s.key),
			zap.String("city", city),
			zap.Error(err))
	}

	return true
}

// Cities returns a copy in insertion order.
func (s *Store) Cities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.cities))
	copy(out, s.cities)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cities)
}

// Ping checks the gateway when it supports it.
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.gateway.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *Store) Close() error {
	return s.gateway.Close()
}
