package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AleksL04/SmartKitBud/internal/pocketbase"
	"github.com/AleksL04/SmartKitBud/internal/session"
)

const itemsCollection = "receipt_items"

// PocketBaseRepository keeps inventory in the upstream record store,
// authenticating each call with the requester's forwarded token from the
// request context. It offers no atomic merge, so reconciliation through it
// runs the documented read-then-write path and can race under concurrent
// commits for the same (owner, name).
type PocketBaseRepository struct {
	pb *pocketbase.Client
}

func NewPocketBaseRepository(pb *pocketbase.Client) *PocketBaseRepository {
	return &PocketBaseRepository{pb: pb}
}

// pbItem mirrors the upstream record shape; created is the store's own
// timestamp format.
type pbItem struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
	Owner    string  `json:"owner"`
	Created  string  `json:"created,omitempty"`
}

const pbTimeLayout = "2006-01-02 15:04:05.000Z"

func (p pbItem) toDomain() ReceiptItem {
	created, _ := time.Parse(pbTimeLayout, p.Created)
	return ReceiptItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
		Unit:     p.Unit,
		Category: p.Category,
		Owner:    p.Owner,
		Created:  created,
	}
}

func fromDomain(item *ReceiptItem) pbItem {
	return pbItem{
		Name:     item.Name,
		Price:    item.Price,
		Quantity: item.Quantity,
		Unit:     item.Unit,
		Category: item.Category,
		Owner:    item.Owner,
	}
}

// quoteFilter escapes a value for use inside a PocketBase filter string.
func quoteFilter(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}

func (r *PocketBaseRepository) FindByOwnerAndName(ctx context.Context, owner, name string) (*ReceiptItem, error) {
	token := session.UpstreamTokenFromContext(ctx)
	filter := fmt.Sprintf("owner = %s && name = %s", quoteFilter(owner), quoteFilter(name))

	var record pbItem
	err := r.pb.First(ctx, token, itemsCollection, filter, &record)
	if errors.Is(err, pocketbase.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	item := record.toDomain()
	return &item, nil
}

func (r *PocketBaseRepository) Create(ctx context.Context, item *ReceiptItem) error {
	token := session.UpstreamTokenFromContext(ctx)

	var stored pbItem
	if err := r.pb.Create(ctx, token, itemsCollection, fromDomain(item), &stored); err != nil {
		return err
	}

	item.ID = stored.ID
	item.Created, _ = time.Parse(pbTimeLayout, stored.Created)
	return nil
}

func (r *PocketBaseRepository) Update(ctx context.Context, item *ReceiptItem) error {
	token := session.UpstreamTokenFromContext(ctx)

	record := fromDomain(item)
	err := r.pb.Update(ctx, token, itemsCollection, item.ID, record, nil)
	if errors.Is(err, pocketbase.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *PocketBaseRepository) Delete(ctx context.Context, owner, id string) error {
	token := session.UpstreamTokenFromContext(ctx)

	// Confirm ownership before deleting; the upstream id space is global.
	filter := fmt.Sprintf("id = %s && owner = %s", quoteFilter(id), quoteFilter(owner))
	var record pbItem
	err := r.pb.First(ctx, token, itemsCollection, filter, &record)
	if errors.Is(err, pocketbase.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	err = r.pb.Delete(ctx, token, itemsCollection, record.ID)
	if errors.Is(err, pocketbase.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *PocketBaseRepository) ListByOwner(ctx context.Context, owner string) ([]ReceiptItem, error) {
	token := session.UpstreamTokenFromContext(ctx)
	filter := fmt.Sprintf("owner = %s", quoteFilter(owner))

	var records []pbItem
	if err := r.pb.List(ctx, token, itemsCollection, filter, "-created", &records); err != nil {
		return nil, err
	}

	items := make([]ReceiptItem, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.toDomain())
	}
	return items, nil
}
