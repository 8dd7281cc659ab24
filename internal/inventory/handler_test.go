package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/AleksL04/SmartKitBud/internal/extract"
	"github.com/AleksL04/SmartKitBud/internal/logger"
)

// fakeExtractor stands in for the model oracle.
type fakeExtractor struct {
	items []extract.ExtractedItem
	err   error
}

func (f *fakeExtractor) ExtractItems(_ context.Context, _ []byte, _ string) ([]extract.ExtractedItem, error) {
	return f.items, f.err
}

func setupRouter(repo Repository, extractor extract.Extractor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	log := logger.NewWithWriter(io.Discard)
	service := NewService(repo, log)
	handler := NewHandler(service, extractor, nil, log)

	// Stand-in for the session middleware.
	r.Use(func(c *gin.Context) {
		c.Set("userID", "owner-1")
	})

	r.POST("/upload", handler.Upload)
	r.POST("/commit", handler.Commit)
	r.GET("/items", handler.ListItems)

	return r
}

func multipartImage(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "receipt.jpg")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write([]byte("fake-jpeg-bytes"))
	_ = writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadReturnsExtractedItems(t *testing.T) {
	extractor := &fakeExtractor{items: []extract.ExtractedItem{
		{Name: "milk", Price: 3.49, Quantity: 1, Unit: ""},
		{Name: "pickles", Price: 4.12, Quantity: 1.5, Unit: "lb"},
	}}
	router := setupRouter(NewInMemoryRepository(), extractor)

	body, contentType := multipartImage(t)
	req, _ := http.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Text []extract.ExtractedItem `json:"text"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Text) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Text))
	}
	if resp.Text[0].Name != "milk" || resp.Text[0].Quantity != 1 || resp.Text[0].Unit != "" {
		t.Fatalf("milk = %+v", resp.Text[0])
	}
	if resp.Text[1].Name != "pickles" || resp.Text[1].Quantity != 1.5 || resp.Text[1].Unit != "lb" {
		t.Fatalf("pickles = %+v", resp.Text[1])
	}
}

func TestUploadMissingFile(t *testing.T) {
	router := setupRouter(NewInMemoryRepository(), &fakeExtractor{})

	req, _ := http.NewRequest("POST", "/upload", &bytes.Buffer{})
	req.Header.Set("Content-Type", "multipart/form-data")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUploadMalformedOracleResponse(t *testing.T) {
	extractor := &fakeExtractor{err: extract.ErrMalformedResponse}
	router := setupRouter(NewInMemoryRepository(), extractor)

	body, contentType := multipartImage(t)
	req, _ := http.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Failed to process receipt.") {
		t.Fatalf("missing generic error message: %s", w.Body.String())
	}
}

func TestCommitRejectsNonArrayBody(t *testing.T) {
	router := setupRouter(NewInMemoryRepository(), &fakeExtractor{})

	req, _ := http.NewRequest("POST", "/commit", strings.NewReader(`{"name":"milk"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCommitThenListRoundTrip(t *testing.T) {
	repo := NewInMemoryRepository()
	router := setupRouter(repo, &fakeExtractor{})

	payload := `[{"name":"milk","price":3.49,"quantity":1,"unit":"","category":"Dairy & Eggs"}]`
	req, _ := http.NewRequest("POST", "/commit", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("commit: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "1 items saved successfully.") {
		t.Fatalf("unexpected commit message: %s", w.Body.String())
	}

	req, _ = http.NewRequest("GET", "/items", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("items: expected 200, got %d", w.Code)
	}

	var items []ReceiptItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Name != "milk" || items[0].Owner != "owner-1" {
		t.Fatalf("items = %+v", items)
	}
}
