package pocketbase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a minimal PocketBase REST client covering what this service
// needs: password auth plus record create/update/list with filter and sort.
// The auth token is passed per call, never stored on the client, so one
// client can be shared across requests for different users.
type Client struct {
	baseURL string
	http    *http.Client
}

var (
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is any other non-2xx answer from the store.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pocketbase: %d %s", e.Status, e.Message)
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// AuthResult is the response of auth-with-password.
type AuthResult struct {
	Token  string `json:"token"`
	Record struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"record"`
}

// AuthWithPassword exchanges user credentials for an upstream bearer token.
func (c *Client) AuthWithPassword(ctx context.Context, collection, identity, password string) (*AuthResult, error) {
	endpoint := fmt.Sprintf("%s/api/collections/%s/auth-with-password", c.baseURL, collection)

	body, err := json.Marshal(map[string]string{
		"identity": identity,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var result AuthResult
	if err := c.do(ctx, http.MethodPost, endpoint, "", bytes.NewReader(body), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// List fetches records from a collection, decoded into out (a slice pointer).
// filter and sort use PocketBase query syntax, e.g. `owner = "x"` / `-created`.
func (c *Client) List(ctx context.Context, token, collection, filter, sort string, out any) error {
	q := url.Values{}
	if filter != "" {
		q.Set("filter", filter)
	}
	if sort != "" {
		q.Set("sort", sort)
	}
	q.Set("perPage", "500")

	endpoint := fmt.Sprintf("%s/api/collections/%s/records?%s", c.baseURL, collection, q.Encode())

	var page struct {
		Items json.RawMessage `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, endpoint, token, nil, &page); err != nil {
		return err
	}
	return json.Unmarshal(page.Items, out)
}

// First fetches the single record matching filter, or ErrNotFound.
func (c *Client) First(ctx context.Context, token, collection, filter string, out any) error {
	q := url.Values{}
	q.Set("filter", filter)
	q.Set("perPage", "1")

	endpoint := fmt.Sprintf("%s/api/collections/%s/records?%s", c.baseURL, collection, q.Encode())

	var page struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, endpoint, token, nil, &page); err != nil {
		return err
	}
	if len(page.Items) == 0 {
		return ErrNotFound
	}
	return json.Unmarshal(page.Items[0], out)
}

// Create inserts a record and decodes the stored result into out (may be nil).
func (c *Client) Create(ctx context.Context, token, collection string, record, out any) error {
	body, err := json.Marshal(record)
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/api/collections/%s/records", c.baseURL, collection)
	return c.do(ctx, http.MethodPost, endpoint, token, bytes.NewReader(body), out)
}

// Update patches an existing record by id.
func (c *Client) Update(ctx context.Context, token, collection, id string, record, out any) error {
	body, err := json.Marshal(record)
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/api/collections/%s/records/%s", c.baseURL, collection, id)
	return c.do(ctx, http.MethodPatch, endpoint, token, bytes.NewReader(body), out)
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, token, collection, id string) error {
	endpoint := fmt.Sprintf("%s/api/collections/%s/records/%s", c.baseURL, collection, id)
	return c.do(ctx, http.MethodDelete, endpoint, token, nil, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint, token string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var remote struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &remote)
		return &APIError{Status: resp.StatusCode, Message: remote.Message}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
