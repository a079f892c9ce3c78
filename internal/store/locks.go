package store

import "sync"

// propertyLocks hands out one mutex per property code so that concurrent
// requests against the same store file serialize instead of racing the
// read-modify-rewrite cycle. Distinct properties never contend.
type propertyLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newPropertyLocks() *propertyLocks {
	return &propertyLocks{m: make(map[string]*sync.Mutex)}
}

func (p *propertyLocks) get(propertyCode string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()

	mu, ok := p.m[propertyCode]
	if !ok {
		mu = &sync.Mutex{}
		p.m[propertyCode] = mu
	}
	return mu
}
