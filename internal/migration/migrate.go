package migration

import (
	"github.com/beaconhq/beacon-backend/internal/domain"
	"gorm.io/gorm"
)

// Run applies the schema for all tables
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.ContentIdentity{},
		&domain.ContentRevision{},
		&domain.ContentPointer{},
		&domain.Lead{},
		&domain.Submission{},
	)
}
