package resolver

import (
	"context"
	"sync"
)

// Sessions groups navigations by viewer id so that a newer navigation from
// the same viewer supersedes an older one still in flight. Idle viewers are
// dropped once their latest navigation settles.
type Sessions struct {
	resolver *Resolver

	mu         sync.Mutex
	navigators map[string]*Navigator
}

func NewSessions(resolver *Resolver) *Sessions {
	return &Sessions{
		resolver:   resolver,
		navigators: make(map[string]*Navigator),
	}
}

func (s *Sessions) Navigate(ctx context.Context, id string, slug string) (*Navigator, *Ticket) {
	s.mu.Lock()
	navigator, ok := s.navigators[id]
	if !ok {
		navigator = NewNavigator(s.resolver, nil)
		s.navigators[id] = navigator
	}
	ticket := navigator.Navigate(ctx, slug)
	s.mu.Unlock()

	return navigator, ticket
}

// Release forgets the viewer when ticket is still its latest navigation.
func (s *Sessions) Release(id string, navigator *Navigator, ticket *Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.navigators[id] != navigator || !navigator.Latest(ticket) {
		return
	}
	navigator.Close()
	delete(s.navigators, id)
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.navigators)
}
