package extract

import (
	"context"
	"errors"
)

// ErrMalformedResponse means the model returned something that is not a
// JSON array even after fence stripping. It is a hard failure; callers
// surface it instead of retrying.
var ErrMalformedResponse = errors.New("malformed upstream response")

// Extractor turns a receipt image into line items. The Gemini client is
// the production implementation; the interface exists so the oracle can be
// swapped (different model, rule engine, test fake) without touching callers.
type Extractor interface {
	ExtractItems(ctx context.Context, image []byte, mimeType string) ([]ExtractedItem, error)
}
