// Package profile holds the single user's registration data for the session.
package profile

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/claude/gymmate/internal/models"
	"github.com/google/uuid"
)

// ErrInvalidInput is returned for a blank name or an unknown gender.
var ErrInvalidInput = errors.New("invalid profile input")

// Kind names a profile mutation.
type Kind string

const (
	KindRegistered Kind = "profile.registered"
	KindUpdated    Kind = "profile.updated"
)

// Event carries the profile after a successful mutation.
type Event struct {
	ID      uuid.UUID      `json:"id"`
	Kind    Kind           `json:"kind"`
	Profile models.Profile `json:"profile"`
	At      time.Time      `json:"at"`
}

// Store is safe for concurrent use. Subscribers follow the same rules as
// registry subscribers: they run after the change is visible and must not
// mutate the store synchronously.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	p       models.Profile

	subsMu sync.Mutex
	subs   []subscriber
	nextID int

	now func() time.Time
}

type subscriber struct {
	id int
	fn func(Event)
}

// New returns a store holding the guest profile.
func New() *Store {
	return &Store{p: models.GuestProfile(), now: time.Now}
}

// Get returns the current profile.
func (s *Store) Get() models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p
}

// Register overwrites every field and marks the profile registered.
func (s *Store) Register(p models.Profile) (models.Profile, error) {
	if strings.TrimSpace(p.Name) == "" {
		return models.Profile{}, fmt.Errorf("register: name is required: %w", ErrInvalidInput)
	}
	if !p.Gender.IsValid() {
		return models.Profile{}, fmt.Errorf("register: gender %q: %w", p.Gender, ErrInvalidInput)
	}
	p.Registered = true

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.Lock()
	s.p = p
	s.mu.Unlock()

	s.publish(KindRegistered, p)
	return p, nil
}

// UpdateNameAge overwrites name and age, leaving the other fields untouched.
func (s *Store) UpdateNameAge(name, age string) (models.Profile, error) {
	if strings.TrimSpace(name) == "" {
		return models.Profile{}, fmt.Errorf("update profile: name is required: %w", ErrInvalidInput)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.Lock()
	s.p.Name = name
	s.p.Age = age
	p := s.p
	s.mu.Unlock()

	s.publish(KindUpdated, p)
	return p, nil
}

// Subscribe registers fn for every subsequent mutation and returns a function
// that removes it.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) publish(kind Kind, p models.Profile) {
	ev := Event{ID: uuid.New(), Kind: kind, Profile: p, At: s.now()}

	s.subsMu.Lock()
	fns := make([]func(Event), len(s.subs))
	for i, sub := range s.subs {
		fns[i] = sub.fn
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
