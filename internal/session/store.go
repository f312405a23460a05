// Package session keeps the two pieces of per-visitor state this app owns:
// the wizard state of anonymous customers and the admin bearer token. Both
// are cookie-addressed; nothing survives a process restart.
package session

import (
	"sync"
	"time"

	"boletera/internal/booking"

	"github.com/google/uuid"
)

const CookieName = "boletera_sid"

type entry struct {
	reserva  *booking.Reserva
	lastSeen time.Time
}

// Store holds in-flight wizard states keyed by session id.
type Store struct {
	mu  sync.Mutex
	ttl time.Duration
	all map[string]*entry
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{
		ttl: ttl,
		all: map[string]*entry{},
	}
}

// Get returns the wizard state for id, creating a fresh one (and a new id
// when the given one is empty or unknown). The returned id must be written
// back to the cookie.
func (s *Store) Get(id string) (string, *booking.Reserva) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()

	if id != "" {
		if e, ok := s.all[id]; ok {
			e.lastSeen = time.Now()
			return id, e.reserva
		}
	}

	id = uuid.NewString()
	r := booking.NewReserva()
	s.all[id] = &entry{reserva: r, lastSeen: time.Now()}
	return id, r
}

// Drop forgets one session, used after a completed reservation.
func (s *Store) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.all, id)
}

func (s *Store) sweep() {
	cutoff := time.Now().Add(-s.ttl)
	for id, e := range s.all {
		if e.lastSeen.Before(cutoff) {
			delete(s.all, id)
		}
	}
}
