package dao

import (
	"fmt"

	"gorm.io/gorm"
)

// InitTables migrates the schema and seeds the role rows the application
// depends on.
func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Role{},
		&User{},
		&AutonomousCommunity{},
		&Province{},
		&Municipality{},
		&Theme{},
		&EventDate{},
		&Event{},
		&Favorite{},
	)
	if err != nil {
		return fmt.Errorf("db.AutoMigrate -> %w", err)
	}

	for _, name := range []string{"ROLE_USER", "ROLE_ADMIN"} {
		role := Role{Name: name}
		if err = db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("db.FirstOrCreate -> %w", err)
		}
	}

	return nil
}
