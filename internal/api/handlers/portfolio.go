package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/username/cardfolio/backend/internal/metrics"
	"github.com/username/cardfolio/backend/internal/models"
	"github.com/username/cardfolio/backend/internal/services"
)

type PortfolioHandler struct {
	cardService      *services.CardService
	portfolioService *services.PortfolioService
}

func NewPortfolioHandler(cards *services.CardService, portfolio *services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		cardService:      cards,
		portfolioService: portfolio,
	}
}

// GetSnapshot recomputes the consolidated portfolio view from the caller's
// live collection. Nothing here is cached or persisted.
func (h *PortfolioHandler) GetSnapshot(c *gin.Context) {
	cards, err := h.cardService.ListCards(callerID(c))
	if err != nil {
		serviceError(c, err)
		return
	}

	snapshot := h.portfolioService.Snapshot(cards)

	metrics.PortfolioInvested.Set(snapshot.TotalInvested)
	metrics.PortfolioReturns.Set(snapshot.TotalReturns)
	metrics.CardsByState.WithLabelValues(string(models.TransactionForSale)).Set(float64(snapshot.Summary.ForSale))
	metrics.CardsByState.WithLabelValues(string(models.TransactionSold)).Set(float64(snapshot.Summary.Sold))
	metrics.CardsByState.WithLabelValues(string(models.TransactionTradedGiven)).Set(float64(snapshot.Summary.TradedGiven))
	metrics.CardsByState.WithLabelValues(string(models.TransactionTradedReceived)).Set(float64(snapshot.Summary.TradedReceived))

	c.JSON(http.StatusOK, snapshot)
}

func (h *PortfolioHandler) GetSoldCardBalance(c *gin.Context) {
	cards, err := h.cardService.ListCards(callerID(c))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sold_card_balance": h.portfolioService.SoldCardBalance(cards)})
}

func (h *PortfolioHandler) GetTransactionGroups(c *gin.Context) {
	cards, err := h.cardService.ListCards(callerID(c))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.portfolioService.TransactionGroups(cards))
}

func (h *PortfolioHandler) GetCraftedCards(c *gin.Context) {
	cards, err := h.cardService.ListCards(callerID(c))
	if err != nil {
		serviceError(c, err)
		return
	}

	crafted := h.portfolioService.CraftedCards(cards)
	c.JSON(http.StatusOK, models.CraftedCardsResponse{
		Count: len(crafted),
		Cards: crafted,
	})
}
