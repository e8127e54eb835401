package material

import (
	"context"
	"errors"
	"sync"

	"pointquad-renderer/internal/logging"
)

// ErrUnresolved is recorded when a resolver returns neither a handle nor an
// error.
var ErrUnresolved = errors.New("material: resolver returned no handle")

// State is the resolution state observed by Peek.
type State int

const (
	Unresolved State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Holder tracks one asynchronous material resolution. The zero value and a
// nil *Holder both read as Unresolved.
type Holder struct {
	mu     sync.RWMutex
	state  State
	handle *Handle
	err    error
	done   chan struct{}
	once   sync.Once
}

// Resolve starts resolving fill in a new goroutine and returns immediately.
func Resolve(ctx context.Context, r Resolver, fill Color) *Holder {
	h := &Holder{done: make(chan struct{})}
	go func() {
		handle, err := r.Resolve(ctx, fill)
		h.complete(handle, err)
	}()
	return h
}

// NewResolved returns a holder that is already Ready with handle.
func NewResolved(handle *Handle) *Holder {
	h := &Holder{done: make(chan struct{})}
	h.complete(handle, nil)
	return h
}

func (h *Holder) complete(handle *Handle, err error) {
	if err == nil && handle == nil {
		err = ErrUnresolved
	}

	h.mu.Lock()
	if err != nil {
		h.state = Failed
		h.err = err
	} else {
		h.state = Ready
		h.handle = handle
	}
	h.mu.Unlock()
	h.once.Do(func() { close(h.done) })

	if err != nil {
		logging.Logger().Warn("material resolution failed", "err", err)
		return
	}
	logging.Logger().Info("material resolved", "id", handle.ID, "base", handle.Base)
}

// Peek returns the current handle and state without blocking. The handle is
// non-nil only when the state is Ready.
func (h *Holder) Peek() (*Handle, State) {
	if h == nil {
		return nil, Unresolved
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.handle, h.state
}

// Err returns the resolution error once the holder has Failed.
func (h *Holder) Err() error {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

// Done is closed when resolution completes, successfully or not.
func (h *Holder) Done() <-chan struct{} {
	if h == nil || h.done == nil {
		return nil
	}
	return h.done
}
