package database

import (
	"log"

	"gorm.io/gorm"
)

// RunMigrations runs custom data migrations after schema changes.
// Every step here is safe to run more than once.
func RunMigrations(db *gorm.DB) error {
	if err := migrateTransactionType(db); err != nil {
		return err
	}
	if err := migratePaymentMethod(db); err != nil {
		return err
	}
	return nil
}

// migrateTransactionType fills in the lifecycle state for rows created before
// the transaction_type column existed. Cards with a sale price recorded are
// treated as sold, everything else as still for sale.
func migrateTransactionType(db *gorm.DB) error {
	if !db.Migrator().HasColumn("cards", "transaction_type") {
		return nil
	}

	result := db.Exec(`
		UPDATE cards
		SET transaction_type = CASE
			WHEN sale_price IS NOT NULL THEN 'sold'
			ELSE 'forSale'
		END
		WHERE transaction_type IS NULL OR transaction_type = ''
	`)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("Backfilled transaction_type for %d cards", result.RowsAffected)
	}
	return nil
}

// migratePaymentMethod normalizes NULL/empty payment methods to 'cash',
// the original default before the field became required.
func migratePaymentMethod(db *gorm.DB) error {
	if !db.Migrator().HasColumn("cards", "payment_method") {
		return nil
	}

	result := db.Exec(`UPDATE cards SET payment_method = 'cash' WHERE payment_method IS NULL OR payment_method = ''`)
	if result.Error != nil {
		log.Printf("Warning: failed to normalize payment_method values: %v", result.Error)
	}
	return nil
}
