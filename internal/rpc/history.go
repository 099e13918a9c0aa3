package rpc

import (
	"fmt"
	"maps"
	"sync"
)

// History is a concurrency-safe in-memory log of executed tasks and
// requests. Records are kept in insertion order for deterministic paging.
type History struct {
	mu      sync.RWMutex
	records map[string]*Record
	order   []string
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{records: make(map[string]*Record)}
}

// Create stores a new record. Record IDs are unique.
func (h *History) Create(rec Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.records[rec.ID]; exists {
		return fmt.Errorf("record %q already exists", rec.ID)
	}
	h.records[rec.ID] = &rec
	h.order = append(h.order, rec.ID)
	return nil
}

// Get returns a copy of the record with the given ID.
func (h *History) Get(id string) (*Record, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rec, ok := h.records[id]
	if !ok {
		return nil, fmt.Errorf("record %q not found", id)
	}
	return copyRecord(rec), nil
}

// Update applies fn to the stored record under the write lock.
func (h *History) Update(id string, fn func(*Record)) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec, ok := h.records[id]
	if !ok {
		return fmt.Errorf("record %q not found", id)
	}
	fn(rec)
	return nil
}

// List returns the records matching filter.
//
// PageToken is the ID of the last record of the previous page; results start
// after it. TotalSize counts every match regardless of paging.
func (h *History) List(filter ListTasksRequest) (*ListTasksResponse, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	start := 0
	if filter.PageToken != "" {
		found := false
		for i, id := range h.order {
			if id == filter.PageToken {
				start = i + 1
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("invalid page token %q", filter.PageToken)
		}
	}

	total := 0
	page := []Record{}
	for i, id := range h.order {
		rec := h.records[id]
		if !matches(rec, filter) {
			continue
		}
		total++
		if i >= start {
			page = append(page, *copyRecord(rec))
		}
	}

	var next string
	if filter.PageSize > 0 && len(page) > filter.PageSize {
		next = page[filter.PageSize-1].ID
		page = page[:filter.PageSize]
	}

	return &ListTasksResponse{Records: page, TotalSize: total, NextPageToken: next}, nil
}

// Len reports the number of stored records.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.order)
}

func matches(rec *Record, filter ListTasksRequest) bool {
	if filter.Agent != "" && rec.Agent != filter.Agent {
		return false
	}
	if filter.State != "" && rec.State != filter.State {
		return false
	}
	return true
}

// copyRecord copies the record and its top-level result map. Nested values
// are shared; stored results are never mutated after completion.
func copyRecord(rec *Record) *Record {
	cp := *rec
	cp.Result = maps.Clone(rec.Result)
	return &cp
}
