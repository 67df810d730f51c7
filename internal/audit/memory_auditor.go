package audit

import (
	"sync"

	"github.com/Brianali-codes/Remaya-full/internal/core"
)

var (
	_ core.Auditor     = (*InMemoryAuditor)(nil)
	_ core.AuditReader = (*InMemoryAuditor)(nil)
)

// InMemoryAuditor is an auditor that stores audit logs in memory.
type InMemoryAuditor struct {
	mu      sync.Mutex
	entries []core.AuditEntry
}

func NewInMemoryAuditor() *InMemoryAuditor {
	return &InMemoryAuditor{
		entries: make([]core.AuditEntry, 0),
	}
}

func (i *InMemoryAuditor) Log(entry core.AuditEntry) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.entries = append(i.entries, entry)
	return nil
}

func (i *InMemoryAuditor) GetRecent(limit int) ([]core.AuditEntry, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	// clamp both directions; a negative limit would panic make below
	if limit < 0 {
		limit = 0
	}
	if limit > len(i.entries) {
		limit = len(i.entries)
	}
	entries := make([]core.AuditEntry, limit)
	for n := 0; n < limit; n++ {
		entries[n] = i.entries[len(i.entries)-1-n]
	}
	return entries, nil
}

func (i *InMemoryAuditor) Find(filter func(entry core.AuditEntry) bool, limit int) ([]core.AuditEntry, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	var matches []core.AuditEntry
	for n := len(i.entries) - 1; n >= 0 && len(matches) < limit; n-- {
		if filter(i.entries[n]) {
			matches = append(matches, i.entries[n])
		}
	}
	return matches, nil
}

func (i *InMemoryAuditor) Close() error {
	return nil // nothing to close :)
}
