package inventory

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("item not found")
	ErrInvalidItem = errors.New("invalid item")
)

// Repository defines the store operations reconciliation needs. Matching
// is exact and case-sensitive on (owner, name).
type Repository interface {
	FindByOwnerAndName(ctx context.Context, owner, name string) (*ReceiptItem, error)
	Create(ctx context.Context, item *ReceiptItem) error
	Update(ctx context.Context, item *ReceiptItem) error
	ListByOwner(ctx context.Context, owner string) ([]ReceiptItem, error)
	Delete(ctx context.Context, owner, id string) error
}

// AtomicReconciler is an optional repository capability: merge-or-create
// in a single store round trip so concurrent commits for the same
// (owner, name) cannot lose an update. The Postgres repository implements
// it with an upsert-with-increment; stores without atomic updates fall
// back to the find/merge/update path in the service.
type AtomicReconciler interface {
	Reconcile(ctx context.Context, item *ReceiptItem) error
}
