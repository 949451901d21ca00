package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model

	Name string `gorm:"uniqueIndex;not null"`

	// Relationships
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type Subcategory struct {
	gorm.Model

	CategoryID uint   `gorm:"not null;index"`
	Name       string `gorm:"not null"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
