package inventory

import "time"

// ReceiptItem is a persisted inventory line. Owner is set once from the
// authenticated requester and never changes.
type ReceiptItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit"`
	Category string    `json:"category"`
	Owner    string    `json:"owner"`
	Created  time.Time `json:"created"`
}

// ItemInput is what the review screen submits back: the transient item
// shape before the server assigns id, owner and timestamp.
type ItemInput struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
}

// Categories is the fixed classification set. Anything else collapses to
// "Other" at commit time.
var Categories = []string{
	"Produce",
	"Dairy & Eggs",
	"Meat & Seafood",
	"Bakery & Bread",
	"Pantry",
	"Frozen Foods",
	"Beverages",
	"Snacks",
	"Household",
	"Personal Care",
	"Other",
}

func NormalizeCategory(category string) string {
	for _, c := range Categories {
		if category == c {
			return c
		}
	}
	return "Other"
}

// merge folds an incoming commit into an existing record: quantity is
// additive, the rest is overwritten by the latest values.
func merge(existing *ReceiptItem, incoming *ReceiptItem) {
	existing.Quantity += incoming.Quantity
	existing.Price = incoming.Price
	existing.Unit = incoming.Unit
	existing.Category = incoming.Category
}
