package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/AleksL04/SmartKitBud/internal/extract"
)

// Archiver keeps a copy of the uploaded receipt image. Optional; a nil
// archiver means uploads are processed without being stored.
type Archiver interface {
	Archive(ctx context.Context, owner, filename string, contentType string, data []byte) (string, error)
}

type Handler struct {
	service   *Service
	extractor extract.Extractor
	archive   Archiver
	log       zerolog.Logger
}

func NewHandler(service *Service, extractor extract.Extractor, archive Archiver, log zerolog.Logger) *Handler {
	return &Handler{
		service:   service,
		extractor: extractor,
		archive:   archive,
		log:       log,
	}
}

// --------------------------------------------------
// POST /upload — receipt image to reviewable items
// --------------------------------------------------
func (h *Handler) Upload(c *gin.Context) {
	owner := c.GetString("userID")

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file was provided."})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file."})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	if h.archive != nil {
		// Archive failure must not block extraction.
		if _, err := h.archive.Archive(c.Request.Context(), owner, header.Filename, contentType, data); err != nil {
			h.log.Warn().Err(err).Str("owner", owner).Msg("receipt archive failed")
		}
	}

	items, err := h.extractor.ExtractItems(c.Request.Context(), data, contentType)
	if err != nil {
		h.log.Error().Err(err).Str("owner", owner).Msg("extraction failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process receipt.",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": items})
}

// --------------------------------------------------
// POST /commit — persist reviewed items
// --------------------------------------------------
func (h *Handler) Commit(c *gin.Context) {
	owner := c.GetString("userID")

	var inputs []ItemInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data format. Expected an array of items."})
		return
	}

	saved, err := h.service.Commit(c.Request.Context(), owner, inputs)
	if errors.Is(err, ErrInvalidItem) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to save items due to a server error.",
			"details": err.Error(),
			"saved":   saved,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("%d items saved successfully.", saved),
	})
}

// --------------------------------------------------
// GET /items — full inventory for the caller
// --------------------------------------------------
func (h *Handler) ListItems(c *gin.Context) {
	owner := c.GetString("userID")

	items, err := h.service.List(c.Request.Context(), owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items due to a server error."})
		return
	}

	c.JSON(http.StatusOK, items)
}

// --------------------------------------------------
// DELETE /items/:id
// --------------------------------------------------
func (h *Handler) DeleteItem(c *gin.Context) {
	owner := c.GetString("userID")
	id := c.Param("id")

	err := h.service.Delete(c.Request.Context(), owner, id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item due to a server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
