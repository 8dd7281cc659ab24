package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// stripFences removes markdown code fences the model sometimes wraps its
// output in despite instructions (```json ... ``` or plain ```).
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```json")
			s = strings.TrimPrefix(s, "```")
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}

// ParseItems defensively parses model output into items. The output
// contract (a JSON array of objects) is not enforced by the model side,
// so anything that is not an array after fence stripping fails with
// ErrMalformedResponse.
func ParseItems(raw string) ([]ExtractedItem, error) {
	clean := stripFences(raw)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var items []ExtractedItem
	if err := json.Unmarshal([]byte(clean), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return items, nil
}
