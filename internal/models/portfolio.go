package models

// InvestmentTotals partitions invested capital by monetary payment method.
// Trade- and essence-financed cards never count as invested capital.
type InvestmentTotals struct {
	TotalCashInvested float64 `json:"total_cash_invested"`
	TotalEthInvested  float64 `json:"total_eth_invested"`
}

// TransactionSummary counts cards per lifecycle state.
type TransactionSummary struct {
	ForSale        int `json:"for_sale"`
	Sold           int `json:"sold"`
	TradedGiven    int `json:"traded_given"`
	TradedReceived int `json:"traded_received"`
}

// TransactionGroups partitions the collection by lifecycle state, each group
// keeping the collection's insertion order.
type TransactionGroups struct {
	ForSale        []Card `json:"for_sale"`
	Sold           []Card `json:"sold"`
	TradedGiven    []Card `json:"traded_given"`
	TradedReceived []Card `json:"traded_received"`
}

// PortfolioSnapshot bundles the aggregates and the full card list so one read
// replaces several separate queries. Always derived, never persisted.
type PortfolioSnapshot struct {
	InvestmentTotals InvestmentTotals   `json:"investment_totals"`
	TotalInvested    float64            `json:"total_invested"`
	TotalReturns     float64            `json:"total_returns"`
	TotalBalance     float64            `json:"total_balance"`
	Summary          TransactionSummary `json:"summary"`
	Cards            []Card             `json:"cards"`
}

// CraftedCardsResponse lists essence-financed cards still held for sale.
type CraftedCardsResponse struct {
	Count int    `json:"count"`
	Cards []Card `json:"cards"`
}
