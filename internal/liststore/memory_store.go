package liststore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore keeps lists in process memory. Items are returned in
// insertion order, ids start at 1 and are never reused.
type MemoryStore struct {
	mu     sync.Mutex
	lists  map[string]*memoryList
	nextID map[string]int
}

type memoryList struct {
	order []int
	items map[int]Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lists:  make(map[string]*memoryList),
		nextID: make(map[string]int),
	}
}

// WithTx is a no-op: memory writes are applied immediately.
func (s *MemoryStore) WithTx(*sql.Tx) Store {
	return s
}

func (s *MemoryStore) list(name string) *memoryList {
	l, ok := s.lists[name]
	if !ok {
		l = &memoryList{items: make(map[int]Item)}
		s.lists[name] = l
	}
	return l
}

func (s *MemoryStore) Select(ctx context.Context, list string, fields ...string) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateNames(list, fields...); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.list(list)
	out := make([]Item, 0, len(l.order))
	for _, id := range l.order {
		src := l.items[id]
		item := Item{IDField: id}
		if len(fields) == 0 {
			for k, v := range src {
				item[k] = v
			}
		} else {
			for _, f := range fields {
				if v, ok := src[f]; ok {
					item[f] = v
				}
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *MemoryStore) Add(ctx context.Context, list string, values Item) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := validateNames(list, keys(values)...); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID[list]++
	id := s.nextID[list]

	l := s.list(list)
	l.items[id] = copyItem(values)
	l.order = append(l.order, id)
	return id, nil
}

func (s *MemoryStore) Update(ctx context.Context, list string, id int, values Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateNames(list, keys(values)...); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.list(list).items[id]
	if !ok {
		return fmt.Errorf("%w: %s/%d", ErrItemNotFound, list, id)
	}
	for k, v := range values {
		if k == IDField {
			continue
		}
		item[k] = v
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, list string, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateNames(list); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.list(list)
	if _, ok := l.items[id]; !ok {
		return fmt.Errorf("%w: %s/%d", ErrItemNotFound, list, id)
	}
	delete(l.items, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return nil
}

func copyItem(src Item) Item {
	dst := make(Item, len(src))
	for k, v := range src {
		if k == IDField {
			continue
		}
		dst[k] = v
	}
	return dst
}

func keys(item Item) []string {
	out := make([]string, 0, len(item))
	for k := range item {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
