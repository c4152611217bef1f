package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/username/cardfolio/backend/internal/models"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// HistoryService keeps the append-only per-user change log. Entries are never
// edited or deleted; there is no cap and no compaction.
type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Record appends one entry with a server-assigned timestamp.
func (s *HistoryService) Record(userID uint, action models.ChangeAction, cardIDs []uint, summary string) error {
	return s.recordTx(s.db, userID, action, cardIDs, summary)
}

// recordTx appends within an existing transaction so a mutation and its
// history entry commit or roll back together.
func (s *HistoryService) recordTx(tx *gorm.DB, userID uint, action models.ChangeAction, cardIDs []uint, summary string) error {
	entry := models.ChangeHistoryEntry{
		UserID:    userID,
		Timestamp: time.Now(),
		Action:    action,
		CardIDs:   cardIDs,
		Summary:   summary,
	}
	return tx.Create(&entry).Error
}

// List returns one page of the user's history, most recent first. Entries
// with equal timestamps stay in insertion order.
func (s *HistoryService) List(userID uint, limit, offset int) (*models.ChangeHistoryPage, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.db.Model(&models.ChangeHistoryEntry{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}

	var entries []models.ChangeHistoryEntry
	err := s.db.Where("user_id = ?", userID).
		Order("timestamp DESC, id ASC").
		Limit(limit).Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return &models.ChangeHistoryPage{
		Entries: entries,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

// Backfill synthesizes history for cards that predate the change log: one
// addCard entry per card, plus one markSold entry per currently sold card.
// A per-user marker makes every later call a no-op.
//
// Backfilled entries are stamped with the current time, not a reconstructed
// original one, so they sort as one contiguous recent block.
func (s *HistoryService) Backfill(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.HistoryBackfillMarker{}).
			Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		var cards []models.Card
		if err := tx.Where("user_id = ?", userID).Order("id ASC").Find(&cards).Error; err != nil {
			return err
		}

		for _, card := range cards {
			err := s.recordTx(tx, userID, models.ActionAddCard,
				[]uint{card.ID}, fmt.Sprintf("Added card %q", card.Name))
			if err != nil {
				return err
			}
		}

		for _, card := range cards {
			if card.TransactionType != models.TransactionSold {
				continue
			}
			price := "unknown price"
			if card.SalePrice != nil {
				price = fmt.Sprintf("%.2f", *card.SalePrice)
			}
			err := s.recordTx(tx, userID, models.ActionMarkSold,
				[]uint{card.ID}, fmt.Sprintf("Sold card %q for %s", card.Name, price))
			if err != nil {
				return err
			}
		}

		return tx.Create(&models.HistoryBackfillMarker{UserID: userID}).Error
	})
}
