package pocketbase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthWithPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/collections/users/auth-with-password" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["identity"] != "test@example.com" {
			t.Errorf("identity not forwarded, got %q", body["identity"])
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "pb-token-xyz",
			"record": map[string]string{
				"id":    "rec1",
				"email": "test@example.com",
				"name":  "Test",
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	result, err := client.AuthWithPassword(context.Background(), "users", "test@example.com", "pw")
	if err != nil {
		t.Fatalf("AuthWithPassword: %v", err)
	}
	if result.Token != "pb-token-xyz" {
		t.Fatalf("token = %q", result.Token)
	}
	if result.Record.ID != "rec1" {
		t.Fatalf("record id = %q", result.Record.ID)
	}
}

func TestAuthWithPasswordBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "Failed to authenticate."})
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.AuthWithPassword(context.Background(), "users", "x@y.z", "wrong")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Fatalf("status = %d", apiErr.Status)
	}
}

func TestListForwardsFilterSortAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "pb-token" {
			t.Errorf("Authorization = %q", got)
		}
		q := r.URL.Query()
		if q.Get("filter") != `owner = "u1"` {
			t.Errorf("filter = %q", q.Get("filter"))
		}
		if q.Get("sort") != "-created" {
			t.Errorf("sort = %q", q.Get("sort"))
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{{"id": "a"}, {"id": "b"}},
		})
	}))
	defer srv.Close()

	client := New(srv.URL)

	var items []struct {
		ID string `json:"id"`
	}
	err := client.List(context.Background(), "pb-token", "receipt_items", `owner = "u1"`, "-created", &items)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 || items[0].ID != "a" {
		t.Fatalf("items = %+v", items)
	}
}

func TestFirstNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
	}))
	defer srv.Close()

	client := New(srv.URL)

	var out map[string]any
	err := client.First(context.Background(), "t", "receipt_items", `name = "milk"`, &out)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUnauthorizedMapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := New(srv.URL)
	err := client.Create(context.Background(), "stale-token", "receipt_items", map[string]string{"name": "milk"}, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
