// Package memory provides the in-memory read/saved-state store backed by
// an LRU cache, bounding memory for long-running columns.
package memory

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultSize bounds how many item states one store retains
const DefaultSize = 10000

// ReadStateStore tracks which items the user read or bookmarked. Eviction
// of old entries is acceptable: an evicted item simply renders as unread
// again, matching the behavior of a fresh session.
type ReadStateStore struct {
	read  *lru.Cache[string, bool]
	saved *lru.Cache[string, bool]
}

// NewReadStateStore creates a store retaining up to size items per state
func NewReadStateStore(size int) (*ReadStateStore, error) {
	if size <= 0 {
		size = DefaultSize
	}

	read, err := lru.New[string, bool](size)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create read cache", goerr.V("size", size))
	}
	saved, err := lru.New[string, bool](size)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create saved cache", goerr.V("size", size))
	}

	return &ReadStateStore{read: read, saved: saved}, nil
}

// IsRead reports whether the item was marked as read
func (s *ReadStateStore) IsRead(itemID string) bool {
	v, ok := s.read.Get(itemID)
	return ok && v
}

// IsSaved reports whether the item is bookmarked
func (s *ReadStateStore) IsSaved(itemID string) bool {
	v, ok := s.saved.Get(itemID)
	return ok && v
}

// MarkRead records the read state of the given items
func (s *ReadStateStore) MarkRead(itemIDs []string, read bool) {
	for _, id := range itemIDs {
		if id == "" {
			continue
		}
		s.read.Add(id, read)
	}
}

// SetSaved records the bookmark state of the given items
func (s *ReadStateStore) SetSaved(itemIDs []string, saved bool) {
	for _, id := range itemIDs {
		if id == "" {
			continue
		}
		s.saved.Add(id, saved)
	}
}
