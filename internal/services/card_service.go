package services

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/username/cardfolio/backend/internal/models"
)

// CardService owns the per-user card collections and their lifecycle state.
// Every mutation runs inside one transaction that also appends the matching
// history entry, so a failed operation leaves no observable change.
//
// SQLite serializes writers, but the read-modify-write sequences here are not
// atomic on their own, so each user's mutations are additionally guarded by a
// per-user mutex.
type CardService struct {
	db      *gorm.DB
	history *HistoryService

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewCardService(db *gorm.DB, history *HistoryService) *CardService {
	return &CardService{
		db:      db,
		history: history,
		locks:   make(map[uint]*sync.Mutex),
	}
}

// userLock returns the mutex guarding one user's collection, creating it on
// first use. Locks are never removed; the map grows with the user count.
func (s *CardService) userLock(userID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// lockUsers acquires both users' locks in ascending id order so concurrent
// cross-user operations cannot deadlock.
func (s *CardService) lockUsers(a, b uint) func() {
	if a == b {
		l := s.userLock(a)
		l.Lock()
		return l.Unlock
	}
	if a > b {
		a, b = b, a
	}
	la, lb := s.userLock(a), s.userLock(b)
	la.Lock()
	lb.Lock()
	return func() {
		lb.Unlock()
		la.Unlock()
	}
}

func applyAttributes(card *models.Card, attrs models.CardAttributes) {
	card.Name = attrs.Name
	card.Rarity = attrs.Rarity
	card.Country = attrs.Country
	card.League = attrs.League
	card.Club = attrs.Club
	card.Age = attrs.Age
	card.Version = attrs.Version
	card.Season = attrs.Season
	card.Position = attrs.Position
	card.Notes = attrs.Notes
	card.PurchasePrice = attrs.PurchasePrice
	card.DiscountPercent = attrs.DiscountPercent
	card.PaymentMethod = attrs.PaymentMethod
	card.PurchaseDate = attrs.PurchaseDate
}

// Create allocates a new card in the forSale state and returns it.
func (s *CardService) Create(userID uint, attrs models.CardAttributes, imageURL string) (*models.Card, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	card := &models.Card{
		UserID:          userID,
		TransactionType: models.TransactionForSale,
		ImageURL:        imageURL,
	}
	applyAttributes(card, attrs)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(card).Error; err != nil {
			return err
		}
		return s.history.recordTx(tx, userID, models.ActionAddCard,
			[]uint{card.ID}, fmt.Sprintf("Added card %q", card.Name))
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// Update replaces every mutable field of the card. Identity, owner, lifecycle
// state, sale fields and trade linkage are preserved.
func (s *CardService) Update(userID, cardID uint, attrs models.CardAttributes) (*models.Card, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var card models.Card
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&card, "id = ? AND user_id = ?", cardID, userID).Error; err != nil {
			return ErrNotFound
		}

		oldName := card.Name
		applyAttributes(&card, attrs)
		if err := tx.Save(&card).Error; err != nil {
			return err
		}

		summary := fmt.Sprintf("Edited card %q", card.Name)
		if oldName != card.Name {
			summary = fmt.Sprintf("Edited card %q -> %q", oldName, card.Name)
		}
		return s.history.recordTx(tx, userID, models.ActionEditCard, []uint{card.ID}, summary)
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// Delete removes the card from the caller's collection.
func (s *CardService) Delete(userID, cardID uint) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var card models.Card
		if err := tx.First(&card, "id = ? AND user_id = ?", cardID, userID).Error; err != nil {
			return ErrNotFound
		}
		if err := tx.Delete(&card).Error; err != nil {
			return err
		}
		return s.history.recordTx(tx, userID, models.ActionDeleteCard,
			[]uint{card.ID}, fmt.Sprintf("Deleted card %q", card.Name))
	})
}

// SetSalePrice corrects a card's sale price without touching its lifecycle
// state.
func (s *CardService) SetSalePrice(userID, cardID uint, price float64) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var card models.Card
		if err := tx.First(&card, "id = ? AND user_id = ?", cardID, userID).Error; err != nil {
			return ErrNotFound
		}

		summary := fmt.Sprintf("Set sale price of %q to %.2f", card.Name, price)
		if card.SalePrice != nil {
			summary = fmt.Sprintf("Updated sale price of %q from %.2f to %.2f", card.Name, *card.SalePrice, price)
		}

		card.SalePrice = &price
		if err := tx.Save(&card).Error; err != nil {
			return err
		}
		return s.history.recordTx(tx, userID, models.ActionUpdateSalePrice, []uint{card.ID}, summary)
	})
}

// MarkSold transitions a forSale card to sold and records the sale terms.
// Re-marking an already sold card overwrites the terms; cards tied up in a
// trade cannot be sold.
func (s *CardService) MarkSold(userID, cardID uint, price float64, saleDate *time.Time) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var card models.Card
		if err := tx.First(&card, "id = ? AND user_id = ?", cardID, userID).Error; err != nil {
			return ErrNotFound
		}
		if card.TransactionType == models.TransactionTradedGiven ||
			card.TransactionType == models.TransactionTradedReceived {
			return ErrInvalidTransition
		}

		card.TransactionType = models.TransactionSold
		card.SalePrice = &price
		if saleDate != nil {
			card.SaleDate = saleDate
		} else {
			now := time.Now()
			card.SaleDate = &now
		}
		if err := tx.Save(&card).Error; err != nil {
			return err
		}

		return s.history.recordTx(tx, userID, models.ActionMarkSold, []uint{card.ID},
			fmt.Sprintf("Sold card %q for %.2f", card.Name, price))
	})
}

// RecordTrade marks the caller's given cards tradedGiven and the received
// cards tradedReceived, linking both sides with one TradeReference.
//
// Given ids that are not owned, not found, or no longer forSale are skipped
// and the trade proceeds with the valid subset; an entirely invalid given
// list fails. Received ids carry no such leniency: they are expected to be
// freshly created in the same call chain, so a missing one aborts the trade.
func (s *CardService) RecordTrade(userID uint, givenIDs, receivedIDs []uint) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var given []models.Card
		if len(givenIDs) > 0 {
			if err := tx.Where("user_id = ? AND id IN ? AND transaction_type = ?",
				userID, givenIDs, models.TransactionForSale).Find(&given).Error; err != nil {
				return err
			}
		}
		if len(given) == 0 {
			return ErrNoValidGivenCards
		}

		validGiven := make([]uint, 0, len(given))
		for _, c := range given {
			validGiven = append(validGiven, c.ID)
		}

		ref := &models.TradeReference{
			GivenCards:    validGiven,
			ReceivedCards: receivedIDs,
		}

		for i := range given {
			given[i].TransactionType = models.TransactionTradedGiven
			given[i].TradeReference = ref
			if err := tx.Save(&given[i]).Error; err != nil {
				return err
			}
		}

		for _, id := range receivedIDs {
			var card models.Card
			if err := tx.First(&card, "id = ? AND user_id = ?", id, userID).Error; err != nil {
				return ErrNotFound
			}
			card.TransactionType = models.TransactionTradedReceived
			card.TradeReference = ref
			if err := tx.Save(&card).Error; err != nil {
				return err
			}
		}

		return s.history.recordTx(tx, userID, models.ActionTrade, validGiven,
			fmt.Sprintf("Traded %d card(s) for %d card(s)", len(validGiven), len(receivedIDs)))
	})
}

// RevertTrade returns a tradedGiven card to forSale and clears its trade
// linkage. The counterparty cards are left untouched.
func (s *CardService) RevertTrade(userID, cardID uint) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var card models.Card
		if err := tx.First(&card, "id = ? AND user_id = ?", cardID, userID).Error; err != nil {
			return ErrNotFound
		}
		if card.TransactionType != models.TransactionTradedGiven {
			return ErrInvalidTransition
		}

		card.TransactionType = models.TransactionForSale
		card.TradeReference = nil
		if err := tx.Save(&card).Error; err != nil {
			return err
		}

		return s.history.recordTx(tx, userID, models.ActionRevertTrade, []uint{card.ID},
			fmt.Sprintf("Reverted trade of card %q", card.Name))
	})
}

// ListCards returns the caller's full collection in insertion order.
func (s *CardService) ListCards(userID uint) ([]models.Card, error) {
	var cards []models.Card
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// TransferCard moves one card to another user's collection. Admin only;
// enforced by the caller.
func (s *CardService) TransferCard(cardID, toUserID uint) error {
	var card models.Card
	if err := s.db.First(&card, "id = ?", cardID).Error; err != nil {
		return ErrNotFound
	}

	unlock := s.lockUsers(card.UserID, toUserID)
	defer unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		// Re-read under the lock; the owner may have changed since the
		// unguarded lookup above.
		if err := tx.First(&card, "id = ?", cardID).Error; err != nil {
			return ErrNotFound
		}
		var target models.User
		if err := tx.First(&target, "id = ?", toUserID).Error; err != nil {
			return ErrUserNotFound
		}
		return tx.Model(&card).Update("user_id", toUserID).Error
	})
}

// SwapCollections exchanges the complete collections of two users. Admin only;
// enforced by the caller.
func (s *CardService) SwapCollections(userA, userB uint) error {
	unlock := s.lockUsers(userA, userB)
	defer unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, id := range []uint{userA, userB} {
			var u models.User
			if err := tx.First(&u, "id = ?", id).Error; err != nil {
				return ErrUserNotFound
			}
		}

		// Park one side on an impossible owner id so the two updates
		// cannot collide.
		if err := tx.Model(&models.Card{}).Where("user_id = ?", userA).
			Update("user_id", uint(0)).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Card{}).Where("user_id = ?", userB).
			Update("user_id", userA).Error; err != nil {
			return err
		}
		return tx.Model(&models.Card{}).Where("user_id = ?", uint(0)).
			Update("user_id", userB).Error
	})
}
