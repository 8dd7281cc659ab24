package recipes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type suggestRequest struct {
	Ingredients string `json:"ingredients"`
}

// --------------------------------------------------
// POST /recipes
// --------------------------------------------------
func (h *Handler) Suggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Ingredients == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredients must be provided as a string."})
		return
	}

	recipes, err := h.service.Suggest(c.Request.Context(), SplitIngredients(req.Ingredients))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes."})
		return
	}

	c.JSON(http.StatusOK, recipes)
}
