package db_models

import "github.com/google/uuid"

// Category is static reference data maintained by the catalog admin.
// The parent/child relation is modeled with ParentID only; children are
// fetched one level at a time to avoid recursive preloads.
type Category struct {
	BaseModel
	Name        string     `gorm:"not null;index"`
	Description string     `gorm:"type:text"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`

	Questions []Question `gorm:"foreignKey:CategoryID"`
	Products  []Product  `gorm:"foreignKey:CategoryID"`
}
