package recipes

import (
	"context"
	"errors"
	"strings"
)

// Finder is the recipe API capability the service depends on.
type Finder interface {
	FindByIngredients(ctx context.Context, ingredients string) ([]Recipe, error)
}

type Service struct {
	finder Finder
}

func NewService(finder Finder) *Service {
	return &Service{finder: finder}
}

// Suggest de-duplicates the ingredient names (case-insensitive), joins
// them comma-separated and forwards them to the recipe API.
func (s *Service) Suggest(ctx context.Context, ingredients []string) ([]Recipe, error) {
	joined := JoinIngredients(ingredients)
	if joined == "" {
		return nil, errors.New("no ingredients provided")
	}
	return s.finder.FindByIngredients(ctx, joined)
}

// JoinIngredients trims, drops empties and case-insensitive duplicates,
// and joins the rest with commas, preserving first-seen order and casing.
func JoinIngredients(names []string) string {
	seen := make(map[string]bool, len(names))
	kept := make([]string, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, name)
	}

	return strings.Join(kept, ",")
}

// SplitIngredients parses the comma-separated form the API accepts.
func SplitIngredients(csv string) []string {
	parts := strings.Split(csv, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
