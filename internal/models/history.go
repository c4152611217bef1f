package models

import (
	"time"
)

type ChangeAction string

const (
	ActionAddCard         ChangeAction = "addCard"
	ActionEditCard        ChangeAction = "editCard"
	ActionDeleteCard      ChangeAction = "deleteCard"
	ActionUpdateSalePrice ChangeAction = "updateSalePrice"
	ActionMarkSold        ChangeAction = "markSold"
	ActionTrade           ChangeAction = "trade"
	ActionRevertTrade     ChangeAction = "revertTrade"
)

// ChangeHistoryEntry is an append-only record of one collection mutation.
// Entries are never edited or deleted once written.
type ChangeHistoryEntry struct {
	ID        uint         `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint         `json:"user_id" gorm:"not null;index"`
	Timestamp time.Time    `json:"timestamp" gorm:"not null;index"`
	Action    ChangeAction `json:"action" gorm:"not null"`
	CardIDs   []uint       `json:"card_ids" gorm:"serializer:json"`
	Summary   string       `json:"summary"`
}

// HistoryBackfillMarker records that history backfill already ran for a user.
// Its presence makes every later backfill call a no-op.
type HistoryBackfillMarker struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// ChangeHistoryPage is the API response for a history listing.
type ChangeHistoryPage struct {
	Entries []ChangeHistoryEntry `json:"entries"`
	Total   int64                `json:"total"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
}
