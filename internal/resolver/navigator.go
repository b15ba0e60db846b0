package resolver

import (
	"context"
	"sync"
)

// Navigator runs the Idle -> Loading -> {Resolved | NotFound} machine for a
// single viewer. Every Navigate starts a new generation; the previous
// generation's load is cancelled and its result is dropped if it still
// arrives.
type Navigator struct {
	resolver *Resolver
	observer func(Result)

	mu         sync.Mutex
	generation uint64
	current    Result
	cancel     context.CancelFunc
}

// Ticket tracks one navigation started by Navigate.
type Ticket struct {
	generation uint64
	slug       string
	done       chan struct{}

	result  Result
	applied bool
}

func (t *Ticket) Slug() string {
	return t.slug
}

func (t *Ticket) Done() <-chan struct{} {
	return t.done
}

// Result reports the navigation's own result and whether it became the
// navigator's current state. Only valid after Done is closed.
func (t *Ticket) Result() (Result, bool) {
	return t.result, t.applied
}

// NewNavigator builds a navigator. observer, if set, is called with every
// state change in order, under the navigator's lock; it must not call back
// into the navigator.
func NewNavigator(resolver *Resolver, observer func(Result)) *Navigator {
	return &Navigator{
		resolver: resolver,
		observer: observer,
		current:  Result{State: StateIdle},
	}
}

func (n *Navigator) Navigate(ctx context.Context, slug string) *Ticket {
	loadCtx, cancel := context.WithCancel(ctx)

	n.mu.Lock()
	if n.cancel != nil {
		n.cancel()
	}
	n.generation++
	ticket := &Ticket{
		generation: n.generation,
		slug:       slug,
		done:       make(chan struct{}),
	}
	n.cancel = cancel
	n.setLocked(Loading(slug))
	n.mu.Unlock()

	go func() {
		defer cancel()
		result := n.resolver.Resolve(loadCtx, slug)

		n.mu.Lock()
		ticket.result = result
		if ticket.generation == n.generation {
			ticket.applied = true
			n.cancel = nil
			n.setLocked(result)
		}
		n.mu.Unlock()
		close(ticket.done)
	}()

	return ticket
}

// Await waits for ticket to settle. The bool is false when a newer
// navigation superseded it.
func (n *Navigator) Await(ctx context.Context, ticket *Ticket) (Result, bool, error) {
	select {
	case <-ctx.Done():
		return Result{}, false, ctx.Err()
	case <-ticket.done:
		result, applied := ticket.Result()
		return result, applied, nil
	}
}

func (n *Navigator) Current() Result {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Latest reports whether ticket belongs to the most recent navigation.
func (n *Navigator) Latest(ticket *Ticket) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return ticket.generation == n.generation
}

// Close cancels any in-flight load. Its result is still delivered.
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
}

func (n *Navigator) setLocked(result Result) {
	n.current = result
	if n.observer != nil {
		n.observer(result)
	}
}
