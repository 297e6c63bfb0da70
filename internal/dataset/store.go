package dataset

import (
	"errors"
	"sync"

	"marketdash/internal/models"
)

// ErrAlreadyPublished is returned when a store receives a second dataset.
var ErrAlreadyPublished = errors.New("dataset already published")

// Store holds the session dataset. It accepts exactly one Publish; readers
// share the published value and must not modify it.
type Store struct {
	mu       sync.RWMutex
	data     *models.Dataset
	universe []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Publish installs the dataset and its selectable universe.
func (s *Store) Publish(ds *models.Dataset, universe []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data != nil {
		return ErrAlreadyPublished
	}
	s.data = ds
	s.universe = append([]string(nil), universe...)
	return nil
}

// Dataset returns the published dataset, or nil before Publish.
func (s *Store) Dataset() *models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Universe returns a copy of the selectable series names.
func (s *Store) Universe() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.universe...)
}

// Ready reports whether a dataset has been published.
func (s *Store) Ready() bool {
	return s.Dataset() != nil
}
