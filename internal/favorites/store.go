package favorites

import (
	"encoding/json"
	"log"

	"github.com/user/tarih/internal/event"
)

// storageKey is the fixed name of the persisted favorites blob.
const storageKey = "favorites"

// Storage is the durable key-value medium behind the store. Get returns an
// empty string for an absent key.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Store keeps the user's favorite events, persisted as one JSON blob that is
// rewritten wholesale on every toggle. Insertion order is display order.
type Store struct {
	storage Storage
	events  []event.Event
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Load reads the persisted blob into memory and returns it. An absent or
// unreadable blob is treated as empty; a malformed one is logged and
// discarded. Load never fails.
func (s *Store) Load() []event.Event {
	s.events = nil

	raw, err := s.storage.Get(storageKey)
	if err != nil {
		log.Printf("favorites: read failed: %v", err)
		return s.List()
	}
	if raw == "" {
		return s.List()
	}

	var events []event.Event
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		log.Printf("favorites: corrupt blob discarded: %v", err)
		return s.List()
	}

	s.events = events
	return s.List()
}

// Toggle removes the event if one with the same id is already saved,
// otherwise appends it, then rewrites the whole blob. The updated sequence
// is returned even when persisting fails.
func (s *Store) Toggle(e event.Event) ([]event.Event, error) {
	found := -1
	for i, saved := range s.events {
		if saved.ID == e.ID {
			found = i
			break
		}
	}

	if found >= 0 {
		s.events = append(s.events[:found], s.events[found+1:]...)
	} else {
		s.events = append(s.events, e)
	}

	return s.List(), s.persist()
}

// Contains reports whether an event with the given id is saved.
func (s *Store) Contains(id string) bool {
	for _, saved := range s.events {
		if saved.ID == id {
			return true
		}
	}
	return false
}

// List returns a copy of the current favorites in insertion order.
func (s *Store) List() []event.Event {
	out := make([]event.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Store) persist() error {
	blob, err := json.Marshal(s.events)
	if err != nil {
		return err
	}
	return s.storage.Set(storageKey, string(blob))
}
