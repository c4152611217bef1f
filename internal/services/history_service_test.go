package services

import (
	"strings"
	"testing"
	"time"

	"github.com/username/cardfolio/backend/internal/models"
)

func TestHistoryListOrdering(t *testing.T) {
	db := setupTestDB(t)
	svc := NewHistoryService(db)
	userID := createTestUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	for i, action := range []models.ChangeAction{models.ActionAddCard, models.ActionEditCard, models.ActionMarkSold} {
		entry := models.ChangeHistoryEntry{
			UserID:    userID,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Action:    action,
			CardIDs:   []uint{1},
			Summary:   string(action),
		}
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("Failed to seed entry: %v", err)
		}
	}

	page, err := svc.List(userID, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Total != 3 || len(page.Entries) != 3 {
		t.Fatalf("Expected 3 entries, got total=%d len=%d", page.Total, len(page.Entries))
	}

	// Most recent first
	if page.Entries[0].Action != models.ActionMarkSold || page.Entries[2].Action != models.ActionAddCard {
		t.Errorf("Entries should be sorted by timestamp descending: %v, %v, %v",
			page.Entries[0].Action, page.Entries[1].Action, page.Entries[2].Action)
	}
}

func TestHistoryTimestampTieKeepsInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewHistoryService(db)
	userID := createTestUser(t, db, "alice")

	ts := time.Now()
	for _, summary := range []string{"first", "second", "third"} {
		entry := models.ChangeHistoryEntry{
			UserID:    userID,
			Timestamp: ts,
			Action:    models.ActionAddCard,
			Summary:   summary,
		}
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("Failed to seed entry: %v", err)
		}
	}

	page, err := svc.List(userID, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Entries[0].Summary != "first" || page.Entries[2].Summary != "third" {
		t.Errorf("Equal timestamps must keep insertion order, got %q, %q, %q",
			page.Entries[0].Summary, page.Entries[1].Summary, page.Entries[2].Summary)
	}
}

func TestHistoryPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewHistoryService(db)
	userID := createTestUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		entry := models.ChangeHistoryEntry{
			UserID:    userID,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Action:    models.ActionAddCard,
		}
		db.Create(&entry)
	}

	page, err := svc.List(userID, 2, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Total != 5 {
		t.Errorf("Expected total 5, got %d", page.Total)
	}
	if len(page.Entries) != 2 {
		t.Errorf("Expected page of 2, got %d", len(page.Entries))
	}

	// Negative offset and zero limit fall back to defaults
	page, err = svc.List(userID, 0, -1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Limit != defaultHistoryLimit || page.Offset != 0 {
		t.Errorf("Expected default limit/offset, got %d/%d", page.Limit, page.Offset)
	}
}

func TestHistoryIsScopedPerUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewHistoryService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if err := svc.Record(alice, models.ActionAddCard, []uint{1}, "alice's card"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	page, _ := svc.List(bob, 10, 0)
	if page.Total != 0 {
		t.Errorf("Bob must not see alice's history, got %d entries", page.Total)
	}
}

func TestBackfillSynthesizesEntries(t *testing.T) {
	db := setupTestDB(t)
	historySvc := NewHistoryService(db)
	userID := createTestUser(t, db, "alice")

	// Cards that predate the change log: seed directly, bypassing the service
	price := 80.0
	cards := []models.Card{
		{UserID: userID, Name: "Held", PaymentMethod: models.PaymentCash, TransactionType: models.TransactionForSale},
		{UserID: userID, Name: "SoldPriced", PaymentMethod: models.PaymentCash, TransactionType: models.TransactionSold, SalePrice: &price},
		{UserID: userID, Name: "SoldUnpriced", PaymentMethod: models.PaymentEth, TransactionType: models.TransactionSold},
	}
	for i := range cards {
		if err := db.Create(&cards[i]).Error; err != nil {
			t.Fatalf("Failed to seed card: %v", err)
		}
	}

	if err := historySvc.Backfill(userID); err != nil {
		t.Fatalf("Backfill failed: %v", err)
	}

	// One addCard per card, plus one markSold per sold card
	if got := historyCount(t, db, userID); got != 5 {
		t.Fatalf("Expected 5 backfilled entries, got %d", got)
	}

	var soldEntries []models.ChangeHistoryEntry
	db.Where("user_id = ? AND action = ?", userID, models.ActionMarkSold).
		Order("id ASC").Find(&soldEntries)
	if len(soldEntries) != 2 {
		t.Fatalf("Expected 2 markSold entries, got %d", len(soldEntries))
	}
	if !strings.Contains(soldEntries[0].Summary, "80.00") {
		t.Errorf("Priced sale should mention its price, got %q", soldEntries[0].Summary)
	}
	if !strings.Contains(soldEntries[1].Summary, "unknown price") {
		t.Errorf("Unpriced sale should use the placeholder, got %q", soldEntries[1].Summary)
	}
}

func TestBackfillIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	historySvc := NewHistoryService(db)
	userID := createTestUser(t, db, "alice")

	card := models.Card{UserID: userID, Name: "Old", PaymentMethod: models.PaymentCash, TransactionType: models.TransactionForSale}
	if err := db.Create(&card).Error; err != nil {
		t.Fatalf("Failed to seed card: %v", err)
	}

	if err := historySvc.Backfill(userID); err != nil {
		t.Fatalf("First backfill failed: %v", err)
	}
	after := historyCount(t, db, userID)

	if err := historySvc.Backfill(userID); err != nil {
		t.Fatalf("Second backfill failed: %v", err)
	}
	if got := historyCount(t, db, userID); got != after {
		t.Errorf("Second backfill must be a no-op: %d -> %d", after, got)
	}
}

func TestBackfillScopedPerUser(t *testing.T) {
	db := setupTestDB(t)
	historySvc := NewHistoryService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	card := models.Card{UserID: alice, Name: "Old", PaymentMethod: models.PaymentCash, TransactionType: models.TransactionForSale}
	db.Create(&card)

	if err := historySvc.Backfill(alice); err != nil {
		t.Fatalf("Backfill failed: %v", err)
	}

	// Bob's marker is independent of alice's
	if err := historySvc.Backfill(bob); err != nil {
		t.Fatalf("Backfill for bob failed: %v", err)
	}
	if got := historyCount(t, db, bob); got != 0 {
		t.Errorf("Bob has no cards, expected 0 entries, got %d", got)
	}
	if got := historyCount(t, db, alice); got != 1 {
		t.Errorf("Expected 1 entry for alice, got %d", got)
	}
}
