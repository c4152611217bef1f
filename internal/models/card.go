package models

import (
	"time"
)

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentEth     PaymentMethod = "eth"
	PaymentEssence PaymentMethod = "essence"
	PaymentTrade   PaymentMethod = "trade"
)

// Valid reports whether m is one of the four known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentEth, PaymentEssence, PaymentTrade:
		return true
	}
	return false
}

type TransactionType string

const (
	TransactionForSale        TransactionType = "forSale"
	TransactionSold           TransactionType = "sold"
	TransactionTradedGiven    TransactionType = "tradedGiven"
	TransactionTradedReceived TransactionType = "tradedReceived"
)

// TradeReference links the two sides of a trade. It is attached to every card
// involved in a recordTrade call and cleared again when the trade is reverted.
type TradeReference struct {
	GivenCards    []uint `json:"given_cards"`
	ReceivedCards []uint `json:"received_cards"`
}

type Card struct {
	ID     uint `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID uint `json:"user_id" gorm:"not null;index"`

	Name     string `json:"name" gorm:"not null;index"`
	Rarity   string `json:"rarity"`
	Country  string `json:"country"`
	League   string `json:"league"`
	Club     string `json:"club"`
	Age      int    `json:"age"`
	Version  string `json:"version"`
	Season   string `json:"season"`
	Position string `json:"position"`
	Notes    string `json:"notes"`
	ImageURL string `json:"image_url"`

	PurchasePrice   float64       `json:"purchase_price"`
	DiscountPercent float64       `json:"discount_percent"`
	PaymentMethod   PaymentMethod `json:"payment_method" gorm:"not null;index"`
	SalePrice       *float64      `json:"sale_price"`
	PurchaseDate    *time.Time    `json:"purchase_date"`
	SaleDate        *time.Time    `json:"sale_date"`

	TransactionType TransactionType `json:"transaction_type" gorm:"not null;index;default:'forSale'"`
	TradeReference  *TradeReference `json:"trade_reference" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CardAttributes carries every caller-settable card field. Identity, owner
// and lifecycle state are never taken from a request.
type CardAttributes struct {
	Name     string `json:"name" binding:"required"`
	Rarity   string `json:"rarity"`
	Country  string `json:"country"`
	League   string `json:"league"`
	Club     string `json:"club"`
	Age      int    `json:"age"`
	Version  string `json:"version"`
	Season   string `json:"season"`
	Position string `json:"position"`
	Notes    string `json:"notes"`

	PurchasePrice   float64       `json:"purchase_price"`
	DiscountPercent float64       `json:"discount_percent"`
	PaymentMethod   PaymentMethod `json:"payment_method" binding:"required"`
	PurchaseDate    *time.Time    `json:"purchase_date"`

	// Optional base64-encoded card image; stored on disk, never in the DB.
	ImageData string `json:"image_data,omitempty"`
}

type MarkSoldRequest struct {
	SalePrice float64    `json:"sale_price" binding:"required"`
	SaleDate  *time.Time `json:"sale_date"`
}

type SetSalePriceRequest struct {
	SalePrice float64 `json:"sale_price" binding:"required"`
}

// RecordTradeRequest describes one trade: the caller's given cards plus the
// counterparty cards, either as freshly supplied attributes (created in the
// same call) or as ids of cards already created.
type RecordTradeRequest struct {
	GivenIDs    []uint           `json:"given_ids" binding:"required"`
	ReceivedIDs []uint           `json:"received_ids"`
	Received    []CardAttributes `json:"received,omitempty"`
}

type RevertTradeRequest struct {
	CardID uint `json:"card_id" binding:"required"`
}
