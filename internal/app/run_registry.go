package app

import (
	"context"
	"sync"
)

// runState is the in-memory handle for one executing operation. Its mutex
// arbitrates the terminal transition between the execution unit and a
// concurrent cancellation: whoever sets done first owns the terminal
// write, and the loser backs off.
type runState struct {
	cancel context.CancelFunc

	mu   sync.Mutex
	done bool
}

// runRegistry tracks the cancellation handle for every in-flight
// operation, keyed by operation ID.
type runRegistry struct {
	mu   sync.Mutex
	runs map[string]*runState
}

func newRunRegistry() *runRegistry {
	return &runRegistry{runs: make(map[string]*runState)}
}

// add registers a new run and returns its state handle.
func (r *runRegistry) add(operationID string, cancel context.CancelFunc) *runState {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := &runState{cancel: cancel}
	r.runs[operationID] = state
	return state
}

// get returns the state handle for an in-flight operation.
func (r *runRegistry) get(operationID string) (*runState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.runs[operationID]
	return state, ok
}

// remove drops a finished run from the registry.
func (r *runRegistry) remove(operationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.runs, operationID)
}
