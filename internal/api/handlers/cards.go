package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/username/cardfolio/backend/internal/metrics"
	"github.com/username/cardfolio/backend/internal/models"
	"github.com/username/cardfolio/backend/internal/services"
)

type CardHandler struct {
	cardService  *services.CardService
	imageStorage *services.ImageStorageService
}

func NewCardHandler(cards *services.CardService, imageStorage *services.ImageStorageService) *CardHandler {
	return &CardHandler{
		cardService:  cards,
		imageStorage: imageStorage,
	}
}

// serviceError maps service-layer sentinel errors to HTTP responses.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoValidGivenCards):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseCardID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func (h *CardHandler) ListCards(c *gin.Context) {
	cards, err := h.cardService.ListCards(callerID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *CardHandler) CreateCard(c *gin.Context) {
	var req models.CardAttributes
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.PaymentMethod.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown payment method"})
		return
	}
	if req.PurchasePrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "purchase price must not be negative"})
		return
	}
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "discount percent must be between 0 and 100"})
		return
	}

	// Image is optional; a failed save never blocks the card itself.
	imageURL := ""
	if req.ImageData != "" && h.imageStorage != nil {
		imageData, err := base64.StdEncoding.DecodeString(req.ImageData)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image data"})
			return
		}
		if filename, err := h.imageStorage.SaveImage(imageData); err == nil {
			imageURL = filename
		}
	}

	card, err := h.cardService.Create(callerID(c), req, imageURL)
	if err != nil {
		serviceError(c, err)
		return
	}

	metrics.CardMutationsTotal.WithLabelValues(string(models.ActionAddCard)).Inc()
	c.JSON(http.StatusCreated, card)
}

func (h *CardHandler) UpdateCard(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	var req models.CardAttributes
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.PaymentMethod.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown payment method"})
		return
	}
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "discount percent must be between 0 and 100"})
		return
	}

	card, err := h.cardService.Update(callerID(c), id, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	metrics.CardMutationsTotal.WithLabelValues(string(models.ActionEditCard)).Inc()
	c.JSON(http.StatusOK, card)
}

func (h *CardHandler) DeleteCard(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	if err := h.cardService.Delete(callerID(c), id); err != nil {
		serviceError(c, err)
		return
	}

	metrics.CardMutationsTotal.WithLabelValues(string(models.ActionDeleteCard)).Inc()
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *CardHandler) SetSalePrice(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	var req models.SetSalePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cardService.SetSalePrice(callerID(c), id, req.SalePrice); err != nil {
		serviceError(c, err)
		return
	}

	metrics.CardMutationsTotal.WithLabelValues(string(models.ActionUpdateSalePrice)).Inc()
	c.JSON(http.StatusOK, gin.H{"message": "sale price updated"})
}

func (h *CardHandler) MarkSold(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	var req models.MarkSoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cardService.MarkSold(callerID(c), id, req.SalePrice, req.SaleDate); err != nil {
		serviceError(c, err)
		return
	}

	metrics.CardMutationsTotal.WithLabelValues(string(models.ActionMarkSold)).Inc()
	c.JSON(http.StatusOK, gin.H{"message": "card marked sold"})
}

// RecordTrade creates any counterparty cards supplied inline, then records
// the trade linking both sides.
func (h *CardHandler) RecordTrade(c *gin.Context) {
	var req models.RecordTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := callerID(c)

	receivedIDs := req.ReceivedIDs
	for _, attrs := range req.Received {
		if !attrs.PaymentMethod.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown payment method on received card"})
			return
		}
		card, err := h.cardService.Create(userID, attrs, "")
		if err != nil {
			serviceError(c, err)
			return
		}
		receivedIDs = append(receivedIDs, card.ID)
	}

	if err := h.cardService.RecordTrade(userID, req.GivenIDs, receivedIDs); err != nil {
		serviceError(c, err)
		return
	}

	metrics.CardMutationsTotal.WithLabelValues(string(models.ActionTrade)).Inc()
	c.JSON(http.StatusOK, gin.H{"message": "trade recorded", "received_ids": receivedIDs})
}

func (h *CardHandler) RevertTrade(c *gin.Context) {
	var req models.RevertTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cardService.RevertTrade(callerID(c), req.CardID); err != nil {
		serviceError(c, err)
		return
	}

	metrics.CardMutationsTotal.WithLabelValues(string(models.ActionRevertTrade)).Inc()
	c.JSON(http.StatusOK, gin.H{"message": "trade reverted"})
}
