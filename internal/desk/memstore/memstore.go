// Package memstore provides an in-memory implementation of desk.Store.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/linnemanlabs/frontdesk/internal/desk"
)

// Store holds the triage queue in memory. Suitable for dev/testing.
type Store struct {
	mu        sync.RWMutex
	customers map[string]*desk.Customer // customer ID -> customer
	byName    map[string]string         // exact trimmed name -> customer ID
	messages  map[string]*desk.Message  // message ID -> message
	responses map[string][]*desk.Response
	agents    []*desk.Agent
	canned    map[string]*desk.CannedResponse
}

// New initializes a new in-memory Store.
func New() *Store {
	return &Store{
		customers: make(map[string]*desk.Customer),
		byName:    make(map[string]string),
		messages:  make(map[string]*desk.Message),
		responses: make(map[string][]*desk.Response),
		canned:    make(map[string]*desk.CannedResponse),
	}
}

// FindCustomerByName retrieves a customer by exact name match. Returns a copy.
func (s *Store) FindCustomerByName(_ context.Context, name string) (*desk.Customer, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[name]
	if !ok {
		return nil, false, nil
	}
	cp := *s.customers[id]
	return &cp, true, nil
}

// GetCustomer retrieves a customer by ID. Returns a copy.
func (s *Store) GetCustomer(_ context.Context, id string) (*desk.Customer, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[id]
	if !ok {
		return nil, false, nil
	}
	cp := *c
	return &cp, true, nil
}

// CreateCustomer stores a copy of the customer.
func (s *Store) CreateCustomer(_ context.Context, c *desk.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.customers[c.ID] = &cp
	s.byName[c.Name] = c.ID
	return nil
}

// CreateMessage stores a copy of the message.
func (s *Store) CreateMessage(_ context.Context, m *desk.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	cp.Customer = nil
	s.messages[m.ID] = &cp
	return nil
}

// GetMessage retrieves a message by ID with its customer joined.
func (s *Store) GetMessage(_ context.Context, id string) (*desk.Message, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.messages[id]
	if !ok {
		return nil, false, nil
	}
	return s.joinCustomer(m), true, nil
}

// ListMessages returns all messages newest-first with customers joined.
func (s *Store) ListMessages(_ context.Context) ([]*desk.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*desk.Message, 0, len(s.messages))
	for _, m := range s.messages {
		out = append(out, s.joinCustomer(m))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateMessage overwrites a stored message.
func (s *Store) UpdateMessage(_ context.Context, m *desk.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	cp.Customer = nil
	s.messages[m.ID] = &cp
	return nil
}

// CreateResponse appends a copy of the response to its message.
func (s *Store) CreateResponse(_ context.Context, r *desk.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	cp.Agent = nil
	s.responses[r.MessageID] = append(s.responses[r.MessageID], &cp)
	return nil
}

// ListResponses returns responses for a message oldest-first with
// agents joined.
func (s *Store) ListResponses(_ context.Context, messageID string) ([]*desk.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rs := s.responses[messageID]
	out := make([]*desk.Response, 0, len(rs))
	for _, r := range rs {
		cp := *r
		for _, a := range s.agents {
			if a.ID == r.AgentID {
				acp := *a
				cp.Agent = &acp
				break
			}
		}
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// FindAnyAgent returns the first provisioned agent, if any. Returns a copy.
func (s *Store) FindAnyAgent(_ context.Context) (*desk.Agent, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.agents) == 0 {
		return nil, false, nil
	}
	cp := *s.agents[0]
	return &cp, true, nil
}

// CreateAgent stores a copy of the agent.
func (s *Store) CreateAgent(_ context.Context, a *desk.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.agents = append(s.agents, &cp)
	return nil
}

// CreateCannedResponse stores a copy of the canned response.
func (s *Store) CreateCannedResponse(_ context.Context, cr *desk.CannedResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *cr
	s.canned[cr.ID] = &cp
	return nil
}

// ListCannedResponses returns canned responses most-used first.
func (s *Store) ListCannedResponses(_ context.Context) ([]*desk.CannedResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*desk.CannedResponse, 0, len(s.canned))
	for _, cr := range s.canned {
		cp := *cr
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UsageCount > out[j].UsageCount
	})
	return out, nil
}

// GetCannedResponse retrieves a canned response by ID. Returns a copy.
func (s *Store) GetCannedResponse(_ context.Context, id string) (*desk.CannedResponse, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cr, ok := s.canned[id]
	if !ok {
		return nil, false, nil
	}
	cp := *cr
	return &cp, true, nil
}

// IncrementCannedUsage bumps a canned response's usage counter.
func (s *Store) IncrementCannedUsage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cr, ok := s.canned[id]; ok {
		cr.UsageCount++
	}
	return nil
}

// joinCustomer copies m with its customer attached. Callers must hold
// at least a read lock.
func (s *Store) joinCustomer(m *desk.Message) *desk.Message {
	cp := *m
	if c, ok := s.customers[m.CustomerID]; ok {
		ccp := *c
		cp.Customer = &ccp
	}
	return &cp
}
