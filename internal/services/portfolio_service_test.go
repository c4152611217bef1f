package services

import (
	"math"
	"testing"

	"github.com/username/cardfolio/backend/internal/models"
)

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func soldCard(price float64, method models.PaymentMethod, purchase, discount float64) models.Card {
	return models.Card{
		PurchasePrice:   purchase,
		DiscountPercent: discount,
		PaymentMethod:   method,
		SalePrice:       &price,
		TransactionType: models.TransactionSold,
	}
}

func TestEffectiveCost(t *testing.T) {
	svc := NewPortfolioService()

	card := models.Card{PurchasePrice: 100, DiscountPercent: 20, PaymentMethod: models.PaymentCash}
	if got := svc.EffectiveCost(card); !floatEquals(got, 80) {
		t.Errorf("Expected effective cost 80, got %v", got)
	}

	// Essence cards cost nothing regardless of purchase price
	card = models.Card{PurchasePrice: 999, PaymentMethod: models.PaymentEssence}
	if got := svc.EffectiveCost(card); got != 0 {
		t.Errorf("Essence card should have zero effective cost, got %v", got)
	}

	// No discount
	card = models.Card{PurchasePrice: 50, PaymentMethod: models.PaymentEth}
	if got := svc.EffectiveCost(card); !floatEquals(got, 50) {
		t.Errorf("Expected effective cost 50, got %v", got)
	}
}

func TestTotalInvestedDiscountedCashCard(t *testing.T) {
	svc := NewPortfolioService()

	cards := []models.Card{
		{PurchasePrice: 100, DiscountPercent: 20, PaymentMethod: models.PaymentCash, TransactionType: models.TransactionForSale},
	}

	if got := svc.TotalInvested(cards); !floatEquals(got, 80) {
		t.Errorf("Expected totalInvested 80, got %v", got)
	}
}

func TestSoldCardBalanceAndReturns(t *testing.T) {
	svc := NewPortfolioService()

	cards := []models.Card{
		soldCard(150, models.PaymentCash, 100, 20),
	}

	if got := svc.TotalReturns(cards); !floatEquals(got, 150) {
		t.Errorf("Expected totalReturns 150, got %v", got)
	}
	if got := svc.TotalBalance(cards); !floatEquals(got, 70) {
		t.Errorf("Expected totalBalance 70, got %v", got)
	}
	if got := svc.SoldCardBalance(cards); !floatEquals(got, 70) {
		t.Errorf("Expected soldCardBalance 70, got %v", got)
	}
}

func TestEssenceSaleIsPureProfit(t *testing.T) {
	svc := NewPortfolioService()

	cards := []models.Card{
		soldCard(50, models.PaymentEssence, 999, 0),
	}

	if got := svc.TotalInvested(cards); got != 0 {
		t.Errorf("Essence card must never contribute to totalInvested, got %v", got)
	}
	if got := svc.SoldCardBalance(cards); !floatEquals(got, 50) {
		t.Errorf("Essence sale should contribute its full price, got %v", got)
	}
}

func TestInvestmentTotalsPartition(t *testing.T) {
	svc := NewPortfolioService()

	cards := []models.Card{
		{PurchasePrice: 100, PaymentMethod: models.PaymentCash},
		{PurchasePrice: 200, DiscountPercent: 50, PaymentMethod: models.PaymentCash},
		{PurchasePrice: 40, PaymentMethod: models.PaymentEth},
		{PurchasePrice: 500, PaymentMethod: models.PaymentTrade},
		{PurchasePrice: 500, PaymentMethod: models.PaymentEssence},
	}

	totals := svc.InvestmentTotals(cards)
	if !floatEquals(totals.TotalCashInvested, 200) {
		t.Errorf("Expected cash invested 200, got %v", totals.TotalCashInvested)
	}
	if !floatEquals(totals.TotalEthInvested, 40) {
		t.Errorf("Expected eth invested 40, got %v", totals.TotalEthInvested)
	}

	// totalInvested must always equal the sum of both partitions
	if got := svc.TotalInvested(cards); !floatEquals(got, totals.TotalCashInvested+totals.TotalEthInvested) {
		t.Errorf("totalInvested %v != cash %v + eth %v", got, totals.TotalCashInvested, totals.TotalEthInvested)
	}
}

func TestSoldCardWithoutPriceContributesZeroReturns(t *testing.T) {
	svc := NewPortfolioService()

	cards := []models.Card{
		{PurchasePrice: 30, PaymentMethod: models.PaymentCash, TransactionType: models.TransactionSold},
	}

	if got := svc.TotalReturns(cards); got != 0 {
		t.Errorf("Sold card with no sale price should contribute 0 returns, got %v", got)
	}
	// Its cost still counts against the sold balance
	if got := svc.SoldCardBalance(cards); !floatEquals(got, -30) {
		t.Errorf("Expected soldCardBalance -30, got %v", got)
	}
}

func TestTransactionSummaryAndGroups(t *testing.T) {
	svc := NewPortfolioService()

	cards := []models.Card{
		{ID: 1, TransactionType: models.TransactionForSale},
		{ID: 2, TransactionType: models.TransactionSold},
		{ID: 3, TransactionType: models.TransactionForSale},
		{ID: 4, TransactionType: models.TransactionTradedGiven},
		{ID: 5, TransactionType: models.TransactionTradedReceived},
	}

	summary := svc.TransactionSummary(cards)
	if summary.ForSale != 2 || summary.Sold != 1 || summary.TradedGiven != 1 || summary.TradedReceived != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}

	groups := svc.TransactionGroups(cards)
	if len(groups.ForSale) != 2 || groups.ForSale[0].ID != 1 || groups.ForSale[1].ID != 3 {
		t.Errorf("ForSale group should keep insertion order, got %+v", groups.ForSale)
	}
	if len(groups.Sold) != 1 || groups.Sold[0].ID != 2 {
		t.Errorf("Unexpected sold group: %+v", groups.Sold)
	}
}

func TestCraftedCards(t *testing.T) {
	svc := NewPortfolioService()

	sold := 10.0
	cards := []models.Card{
		{ID: 1, PaymentMethod: models.PaymentEssence, TransactionType: models.TransactionForSale},
		{ID: 2, PaymentMethod: models.PaymentEssence, TransactionType: models.TransactionSold, SalePrice: &sold},
		{ID: 3, PaymentMethod: models.PaymentCash, TransactionType: models.TransactionForSale},
		{ID: 4, PaymentMethod: models.PaymentEssence, TransactionType: models.TransactionTradedGiven},
	}

	crafted := svc.CraftedCards(cards)
	if len(crafted) != 1 || crafted[0].ID != 1 {
		t.Errorf("Only essence cards still for sale count as crafted, got %+v", crafted)
	}
}

func TestSnapshotConsistency(t *testing.T) {
	svc := NewPortfolioService()

	cards := []models.Card{
		{PurchasePrice: 100, DiscountPercent: 20, PaymentMethod: models.PaymentCash, TransactionType: models.TransactionForSale},
		soldCard(150, models.PaymentEth, 100, 0),
	}

	snapshot := svc.Snapshot(cards)

	if !floatEquals(snapshot.TotalInvested, snapshot.InvestmentTotals.TotalCashInvested+snapshot.InvestmentTotals.TotalEthInvested) {
		t.Error("Snapshot totalInvested must equal the sum of its partitions")
	}
	if !floatEquals(snapshot.TotalBalance, snapshot.TotalReturns-snapshot.TotalInvested) {
		t.Error("Snapshot totalBalance must equal returns minus invested")
	}
	if len(snapshot.Cards) != len(cards) {
		t.Errorf("Snapshot should carry the full card list, got %d cards", len(snapshot.Cards))
	}
	if !floatEquals(snapshot.TotalInvested, 180) {
		t.Errorf("Expected totalInvested 180, got %v", snapshot.TotalInvested)
	}
	if !floatEquals(snapshot.TotalReturns, 150) {
		t.Errorf("Expected totalReturns 150, got %v", snapshot.TotalReturns)
	}
}
