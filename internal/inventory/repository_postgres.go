package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByOwnerAndName(ctx context.Context, owner, name string) (*ReceiptItem, error) {
	query := `
		SELECT id, name, price, quantity, unit, category, owner, created_at
		FROM receipt_items
		WHERE owner=$1 AND name=$2
	`
	item := &ReceiptItem{}
	err := r.db.QueryRow(ctx, query, owner, name).Scan(
		&item.ID, &item.Name, &item.Price, &item.Quantity,
		&item.Unit, &item.Category, &item.Owner, &item.Created,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, item *ReceiptItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	query := `
		INSERT INTO receipt_items (id, name, price, quantity, unit, category, owner)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query,
		item.ID, item.Name, item.Price, item.Quantity,
		item.Unit, item.Category, item.Owner,
	).Scan(&item.Created)
}

func (r *PostgresRepository) Update(ctx context.Context, item *ReceiptItem) error {
	query := `
		UPDATE receipt_items
		SET price=$1, quantity=$2, unit=$3, category=$4
		WHERE id=$5 AND owner=$6
	`
	tag, err := r.db.Exec(ctx, query,
		item.Price, item.Quantity, item.Unit, item.Category,
		item.ID, item.Owner,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, owner string) ([]ReceiptItem, error) {
	query := `
		SELECT id, name, price, quantity, unit, category, owner, created_at
		FROM receipt_items
		WHERE owner=$1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []ReceiptItem{}
	for rows.Next() {
		var item ReceiptItem
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Price, &item.Quantity,
			&item.Unit, &item.Category, &item.Owner, &item.Created,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) Delete(ctx context.Context, owner, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM receipt_items WHERE id=$1 AND owner=$2`, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Reconcile merges or creates in one statement. The unique (owner, name)
// index makes the quantity increment atomic, so concurrent commits for the
// same item cannot lose an update.
func (r *PostgresRepository) Reconcile(ctx context.Context, item *ReceiptItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	query := `
		INSERT INTO receipt_items (id, name, price, quantity, unit, category, owner)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (owner, name) DO UPDATE SET
			quantity = receipt_items.quantity + EXCLUDED.quantity,
			price    = EXCLUDED.price,
			unit     = EXCLUDED.unit,
			category = EXCLUDED.category
		RETURNING id, quantity, created_at
	`
	return r.db.QueryRow(ctx, query,
		item.ID, item.Name, item.Price, item.Quantity,
		item.Unit, item.Category, item.Owner,
	).Scan(&item.ID, &item.Quantity, &item.Created)
}
