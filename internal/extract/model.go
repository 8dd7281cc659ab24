package extract

// ExtractedItem is the transient pre-persistence shape produced by the
// pipeline. It becomes a stored item only after the user confirms it.
type ExtractedItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
}
