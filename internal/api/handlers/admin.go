package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/username/cardfolio/backend/internal/models"
	"github.com/username/cardfolio/backend/internal/services"
)

type AdminHandler struct {
	cardService *services.CardService
}

func NewAdminHandler(cards *services.CardService) *AdminHandler {
	return &AdminHandler{cardService: cards}
}

// TransferCard moves a card to another user's collection.
func (h *AdminHandler) TransferCard(c *gin.Context) {
	var req models.TransferCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cardService.TransferCard(req.CardID, req.ToUserID); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "card transferred"})
}

// SwapCollections exchanges two users' complete collections.
func (h *AdminHandler) SwapCollections(c *gin.Context) {
	var req models.SwapCollectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserA == req.UserB {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot swap a collection with itself"})
		return
	}

	if err := h.cardService.SwapCollections(req.UserA, req.UserB); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "collections swapped"})
}
