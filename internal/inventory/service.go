package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// --------------------------------------------------
// Commit (reconciliation)
// --------------------------------------------------

// Commit reconciles reviewed items into the owner's inventory, one by one.
// An exact (owner, name) match merges quantities additively and overwrites
// price/unit/category; otherwise a new record is created. The first store
// error aborts the batch; items committed before it stay committed.
// Returns how many items were saved.
func (s *Service) Commit(ctx context.Context, owner string, inputs []ItemInput) (int, error) {
	if owner == "" {
		return 0, errors.New("missing owner")
	}

	for i, input := range inputs {
		if err := validateInput(input); err != nil {
			return i, fmt.Errorf("item %d (%q): %w", i, input.Name, err)
		}

		item := &ReceiptItem{
			Name:     input.Name,
			Price:    input.Price,
			Quantity: input.Quantity,
			Unit:     input.Unit,
			Category: NormalizeCategory(input.Category),
			Owner:    owner,
		}

		if err := s.reconcile(ctx, item); err != nil {
			s.log.Error().Err(err).Str("owner", owner).Str("name", item.Name).
				Int("saved", i).Msg("commit aborted")
			return i, err
		}
	}

	s.log.Info().Str("owner", owner).Int("items", len(inputs)).Msg("commit complete")
	return len(inputs), nil
}

func (s *Service) reconcile(ctx context.Context, item *ReceiptItem) error {
	// Stores with an atomic merge do it in one round trip.
	if r, ok := s.repo.(AtomicReconciler); ok {
		return r.Reconcile(ctx, item)
	}

	existing, err := s.repo.FindByOwnerAndName(ctx, item.Owner, item.Name)
	switch {
	case errors.Is(err, ErrNotFound):
		return s.repo.Create(ctx, item)
	case err != nil:
		return err
	}

	merge(existing, item)
	return s.repo.Update(ctx, existing)
}

func validateInput(input ItemInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidItem)
	}
	if input.Quantity < 0 {
		return fmt.Errorf("%w: negative quantity", ErrInvalidItem)
	}
	if input.Price < 0 {
		return fmt.Errorf("%w: negative price", ErrInvalidItem)
	}
	return nil
}

// --------------------------------------------------
// List
// --------------------------------------------------

// List returns everything the owner has, newest first. The ownership
// filter lives in the repository query, never on the client side.
func (s *Service) List(ctx context.Context, owner string) ([]ReceiptItem, error) {
	if owner == "" {
		return nil, errors.New("missing owner")
	}
	return s.repo.ListByOwner(ctx, owner)
}

// --------------------------------------------------
// Delete
// --------------------------------------------------

// Delete removes one item, only if the caller owns it.
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	if owner == "" || id == "" {
		return errors.New("missing owner or item id")
	}
	return s.repo.Delete(ctx, owner, id)
}
