package inventory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository backs tests and local development without a store.
type InMemoryRepository struct {
	mu    sync.Mutex
	items map[string]*ReceiptItem // keyed by id
	clock func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items: make(map[string]*ReceiptItem),
		clock: time.Now,
	}
}

func (r *InMemoryRepository) FindByOwnerAndName(_ context.Context, owner, name string) (*ReceiptItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.Owner == owner && item.Name == name {
			copy := *item
			return &copy, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, item *ReceiptItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.Created = r.clock()

	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *InMemoryRepository) Update(_ context.Context, item *ReceiptItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok || existing.Owner != item.Owner {
		return ErrNotFound
	}

	stored := *item
	stored.Created = existing.Created
	r.items[item.ID] = &stored
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, owner, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.Owner != owner {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *InMemoryRepository) ListByOwner(_ context.Context, owner string) ([]ReceiptItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := []ReceiptItem{}
	for _, item := range r.items {
		if item.Owner == owner {
			items = append(items, *item)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Created.After(items[j].Created)
	})
	return items, nil
}
