// Package registry holds the ordered, in-memory set of workout programs.
//
// Every successful mutation is published to the registered subscribers in
// mutation order. Subscribers run on the mutating goroutine once the data lock
// is released, so they may read the registry but must not mutate it
// synchronously.
package registry

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/claude/gymmate/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no live program has the requested id.
	ErrNotFound = errors.New("program not found")
	// ErrInvalidInput is returned for blank fields or out-of-range progress.
	ErrInvalidInput = errors.New("invalid program input")
)

// Kind names a registry mutation.
type Kind string

const (
	KindAdded    Kind = "program.added"
	KindUpdated  Kind = "program.updated"
	KindDeleted  Kind = "program.deleted"
	KindProgress Kind = "program.progress"
)

// Event describes one successful mutation. Program is the record after the
// change, or the removed record for KindDeleted.
type Event struct {
	ID      uuid.UUID      `json:"id"`
	Kind    Kind           `json:"kind"`
	Program models.Program `json:"program"`
	At      time.Time      `json:"at"`
}

// Registry is safe for concurrent use.
type Registry struct {
	// writeMu serializes mutations together with their delivery, so
	// subscribers see events in mutation order. Readers only take mu.
	writeMu  sync.Mutex
	mu       sync.RWMutex
	programs []models.Program
	nextID   int

	subsMu  sync.Mutex
	subs    []subscriber
	nextSub int

	now func() time.Time
}

// New creates a registry holding the given programs in order.
// Ids must be unique; the id counter starts above the highest one.
func New(initial []models.Program) (*Registry, error) {
	r := &Registry{
		programs: make([]models.Program, 0, len(initial)),
		nextID:   1,
		now:      time.Now,
	}
	seen := make(map[int]struct{}, len(initial))
	for _, p := range initial {
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("seeding registry: duplicate id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
		r.programs = append(r.programs, p)
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r, nil
}

// NewSeeded creates a registry holding models.DefaultPrograms.
func NewSeeded() *Registry {
	r, err := New(models.DefaultPrograms())
	if err != nil {
		panic(err) // default seed ids are unique
	}
	return r
}

// List returns a copy of the programs in insertion order.
func (r *Registry) List() []models.Program {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Program, len(r.programs))
	copy(out, r.programs)
	return out
}

// Len returns the number of live programs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.programs)
}

// Get returns the program with the given id.
func (r *Registry) Get(id int) (models.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return models.Program{}, fmt.Errorf("get %d: %w", id, ErrNotFound)
	}
	return r.programs[i], nil
}

// Add appends a new program with zero progress and a fresh id.
func (r *Registry) Add(day, muscle string) (models.Program, error) {
	if err := checkLabels(day, muscle); err != nil {
		return models.Program{}, fmt.Errorf("add: %w", err)
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	p := models.Program{ID: r.nextID, Day: day, Muscle: muscle}
	r.nextID++
	r.programs = append(r.programs, p)
	r.mu.Unlock()

	r.publish(KindAdded, p)
	return p, nil
}

// Update replaces day and muscle of the program with the given id, keeping
// its id, progress and position.
func (r *Registry) Update(id int, day, muscle string) (models.Program, error) {
	if err := checkLabels(day, muscle); err != nil {
		return models.Program{}, fmt.Errorf("update %d: %w", id, err)
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	i := r.indexOf(id)
	if i < 0 {
		r.mu.Unlock()
		return models.Program{}, fmt.Errorf("update %d: %w", id, ErrNotFound)
	}
	r.programs[i].Day = day
	r.programs[i].Muscle = muscle
	p := r.programs[i]
	r.mu.Unlock()

	r.publish(KindUpdated, p)
	return p, nil
}

// SetProgress records the completion fraction of a program. Values outside
// [0, 1] are rejected, never clamped.
func (r *Registry) SetProgress(id int, progress float64) (models.Program, error) {
	if math.IsNaN(progress) || progress < 0 || progress > 1 {
		return models.Program{}, fmt.Errorf("set progress %d to %v: %w", id, progress, ErrInvalidInput)
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	i := r.indexOf(id)
	if i < 0 {
		r.mu.Unlock()
		return models.Program{}, fmt.Errorf("set progress %d: %w", id, ErrNotFound)
	}
	r.programs[i].Progress = progress
	p := r.programs[i]
	r.mu.Unlock()

	r.publish(KindProgress, p)
	return p, nil
}

// Delete removes the program with the given id. The order of the remaining
// programs is preserved.
func (r *Registry) Delete(id int) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	i := r.indexOf(id)
	if i < 0 {
		r.mu.Unlock()
		return fmt.Errorf("delete %d: %w", id, ErrNotFound)
	}
	p := r.programs[i]
	r.programs = append(r.programs[:i], r.programs[i+1:]...)
	r.mu.Unlock()

	r.publish(KindDeleted, p)
	return nil
}

// Subscribe registers fn for every subsequent mutation and returns a function
// that removes it. Cancelling twice is harmless. fn runs while the next
// mutation is held off, so calling Add, Update, SetProgress or Delete from
// inside fn deadlocks; hand such work to another goroutine.
func (r *Registry) Subscribe(fn func(Event)) (cancel func()) {
	r.subsMu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs = append(r.subs, subscriber{id: id, fn: fn})
	r.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.subsMu.Lock()
			defer r.subsMu.Unlock()
			for i, s := range r.subs {
				if s.id == id {
					r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// publish must be called with writeMu held and mu released.
func (r *Registry) publish(kind Kind, p models.Program) {
	ev := Event{ID: uuid.New(), Kind: kind, Program: p, At: r.now()}
	for _, fn := range r.subscribers() {
		fn(ev)
	}
}

func (r *Registry) subscribers() []func(Event) {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()
	out := make([]func(Event), len(r.subs))
	for i, s := range r.subs {
		out[i] = s.fn
	}
	return out
}

type subscriber struct {
	id int
	fn func(Event)
}

func (r *Registry) indexOf(id int) int {
	for i, p := range r.programs {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func checkLabels(day, muscle string) error {
	if strings.TrimSpace(day) == "" {
		return fmt.Errorf("day is required: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(muscle) == "" {
		return fmt.Errorf("muscle is required: %w", ErrInvalidInput)
	}
	return nil
}
