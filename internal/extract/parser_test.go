package extract

import (
	"errors"
	"testing"
)

func TestParseItemsPlainArray(t *testing.T) {
	raw := `[
		{"name": "milk", "price": 3.49, "quantity": 1, "unit": ""},
		{"name": "pickles", "price": 4.12, "quantity": 1.5, "unit": "lb"}
	]`

	items, err := ParseItems(raw)
	if err != nil {
		t.Fatalf("ParseItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	milk := items[0]
	if milk.Name != "milk" || milk.Quantity != 1 || milk.Unit != "" || milk.Price != 3.49 {
		t.Fatalf("milk = %+v", milk)
	}

	pickles := items[1]
	if pickles.Name != "pickles" || pickles.Quantity != 1.5 || pickles.Unit != "lb" || pickles.Price != 4.12 {
		t.Fatalf("pickles = %+v", pickles)
	}
}

func TestParseItemsMarkdownFenced(t *testing.T) {
	raw := "```json\n[{\"name\": \"milk\", \"price\": 3.49, \"quantity\": 1, \"unit\": \"\"}]\n```"

	items, err := ParseItems(raw)
	if err != nil {
		t.Fatalf("ParseItems on fenced JSON: %v", err)
	}
	if len(items) != 1 || items[0].Name != "milk" {
		t.Fatalf("items = %+v", items)
	}
}

func TestParseItemsBareFence(t *testing.T) {
	raw := "```\n[]\n```"

	items, err := ParseItems(raw)
	if err != nil {
		t.Fatalf("ParseItems: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty array, got %+v", items)
	}
}

func TestParseItemsNotJSON(t *testing.T) {
	for _, raw := range []string{
		"Sorry, I could not read the receipt.",
		"```json\nnot json at all\n```",
		"",
		"{\"name\": \"milk\"}", // object, not array
	} {
		_, err := ParseItems(raw)
		if !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("ParseItems(%q): expected ErrMalformedResponse, got %v", raw, err)
		}
	}
}

func TestStripFencesLeavesCleanInputAlone(t *testing.T) {
	in := `[{"name":"milk"}]`
	if got := stripFences(in); got != in {
		t.Fatalf("stripFences changed clean input: %q", got)
	}
}
