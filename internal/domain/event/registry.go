package event

import (
	"sync"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
)

// Token is the opaque handle returned when a callback is registered. It is
// the only way to unregister that callback.
type Token uint64

// Registry keeps callbacks in registration order, addressable by Token.
type Registry[F any] struct {
	mu      sync.Mutex
	seq     *id.Sequence
	entries []entry[F]
}

type entry[F any] struct {
	token Token
	fn    F
}

// NewRegistry returns an empty registry drawing tokens from seq. Registries
// that share a sequence never hand out the same token twice.
func NewRegistry[F any](seq *id.Sequence) *Registry[F] {
	if seq == nil {
		seq = &id.Sequence{}
	}
	return &Registry[F]{seq: seq}
}

// Add appends fn and returns its token.
func (r *Registry[F]) Add(fn F) Token {
	r.mu.Lock()
	defer r.mu.Unlock()

	tok := Token(r.seq.Next())
	r.entries = append(r.entries, entry[F]{token: tok, fn: fn})
	return tok
}

// Remove drops the callback registered under tok.
func (r *Registry[F]) Remove(tok Token) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.token == tok {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered callbacks.
func (r *Registry[F]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Snapshot returns the callbacks in registration order. Callbacks added or
// removed while the caller iterates the snapshot do not affect it.
func (r *Registry[F]) Snapshot() []F {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]F, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.fn
	}
	return out
}
