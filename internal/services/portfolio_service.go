package services

import (
	"github.com/username/cardfolio/backend/internal/models"
)

// PortfolioService derives monetary aggregates from a card list. It holds no
// state and persists nothing: every read recomputes from the live collection,
// so aggregates can never drift out of sync with the cards.
type PortfolioService struct{}

func NewPortfolioService() *PortfolioService {
	return &PortfolioService{}
}

// EffectiveCost is the purchase price after discount. Essence-financed cards
// cost nothing regardless of any purchase price they carry: their proceeds
// are pure profit.
func (s *PortfolioService) EffectiveCost(card models.Card) float64 {
	if card.PaymentMethod == models.PaymentEssence {
		return 0
	}
	return card.PurchasePrice * (1 - card.DiscountPercent/100)
}

// InvestmentTotals sums effective cost partitioned by monetary payment
// method. Trade- and essence-financed cards contribute nothing.
func (s *PortfolioService) InvestmentTotals(cards []models.Card) models.InvestmentTotals {
	var totals models.InvestmentTotals
	for _, card := range cards {
		switch card.PaymentMethod {
		case models.PaymentCash:
			totals.TotalCashInvested += s.EffectiveCost(card)
		case models.PaymentEth:
			totals.TotalEthInvested += s.EffectiveCost(card)
		}
	}
	return totals
}

// TotalInvested is the sum of both monetary partitions.
func (s *PortfolioService) TotalInvested(cards []models.Card) float64 {
	totals := s.InvestmentTotals(cards)
	return totals.TotalCashInvested + totals.TotalEthInvested
}

// TotalReturns sums sale prices over sold cards. A sold card with no recorded
// sale price contributes zero.
func (s *PortfolioService) TotalReturns(cards []models.Card) float64 {
	total := 0.0
	for _, card := range cards {
		if card.TransactionType == models.TransactionSold && card.SalePrice != nil {
			total += *card.SalePrice
		}
	}
	return total
}

// TotalBalance is returns minus invested capital.
func (s *PortfolioService) TotalBalance(cards []models.Card) float64 {
	return s.TotalReturns(cards) - s.TotalInvested(cards)
}

// SoldCardBalance sums per-card profit/loss over sold cards.
func (s *PortfolioService) SoldCardBalance(cards []models.Card) float64 {
	balance := 0.0
	for _, card := range cards {
		if card.TransactionType != models.TransactionSold {
			continue
		}
		if card.SalePrice != nil {
			balance += *card.SalePrice
		}
		balance -= s.EffectiveCost(card)
	}
	return balance
}

// TransactionSummary counts cards per lifecycle state.
func (s *PortfolioService) TransactionSummary(cards []models.Card) models.TransactionSummary {
	var summary models.TransactionSummary
	for _, card := range cards {
		switch card.TransactionType {
		case models.TransactionForSale:
			summary.ForSale++
		case models.TransactionSold:
			summary.Sold++
		case models.TransactionTradedGiven:
			summary.TradedGiven++
		case models.TransactionTradedReceived:
			summary.TradedReceived++
		}
	}
	return summary
}

// TransactionGroups partitions the collection by lifecycle state, preserving
// insertion order within each group.
func (s *PortfolioService) TransactionGroups(cards []models.Card) models.TransactionGroups {
	var groups models.TransactionGroups
	for _, card := range cards {
		switch card.TransactionType {
		case models.TransactionForSale:
			groups.ForSale = append(groups.ForSale, card)
		case models.TransactionSold:
			groups.Sold = append(groups.Sold, card)
		case models.TransactionTradedGiven:
			groups.TradedGiven = append(groups.TradedGiven, card)
		case models.TransactionTradedReceived:
			groups.TradedReceived = append(groups.TradedReceived, card)
		}
	}
	return groups
}

// CraftedCards returns essence-financed cards still held for sale: crafted
// acquisitions not yet sold or traded away.
func (s *PortfolioService) CraftedCards(cards []models.Card) []models.Card {
	var crafted []models.Card
	for _, card := range cards {
		if card.PaymentMethod == models.PaymentEssence &&
			card.TransactionType == models.TransactionForSale {
			crafted = append(crafted, card)
		}
	}
	return crafted
}

// Snapshot bundles the aggregates with the full card list so one read
// replaces several separate queries.
func (s *PortfolioService) Snapshot(cards []models.Card) models.PortfolioSnapshot {
	totals := s.InvestmentTotals(cards)
	invested := totals.TotalCashInvested + totals.TotalEthInvested
	returns := s.TotalReturns(cards)

	return models.PortfolioSnapshot{
		InvestmentTotals: totals,
		TotalInvested:    invested,
		TotalReturns:     returns,
		TotalBalance:     returns - invested,
		Summary:          s.TransactionSummary(cards),
		Cards:            cards,
	}
}
