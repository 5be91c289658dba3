package catalog

import "sync"

// Criteria is the current search term and optional type filter. An empty
// Type means no type filter.
type Criteria struct {
	Search string
	Type   string
}

func (c Criteria) IsZero() bool {
	return c.Search == "" && c.Type == ""
}

func (c Criteria) WithSearch(term string) Criteria {
	c.Search = term
	return c
}

func (c Criteria) WithType(label string) Criteria {
	c.Type = label
	return c
}

func (c Criteria) Clear() Criteria {
	return Criteria{}
}

// CriteriaStore holds criteria shared between screens.
type CriteriaStore struct {
	mu       sync.RWMutex
	criteria Criteria
}

func NewCriteriaStore() *CriteriaStore {
	return &CriteriaStore{}
}

func (s *CriteriaStore) Get() Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

func (s *CriteriaStore) Set(c Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
}

// Update applies fn atomically and returns the result.
func (s *CriteriaStore) Update(fn func(Criteria) Criteria) Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = fn(s.criteria)
	return s.criteria
}
