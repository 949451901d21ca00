// Package gormstore is the Postgres-backed Store implementation. Uniqueness
// of (event_id, user_id) pairs is enforced by composite unique indexes, so
// duplicate joins lose at the database even under concurrent requests.
package gormstore

import (
	"errors"
	"strings"

	"github.com/baco-dev/baco/internal/models"
	"github.com/baco-dev/baco/internal/store"
	"gorm.io/gorm"
)

type Gormstore struct {
	db *gorm.DB
}

// New wraps a connection opened with TranslateError enabled, which is what
// turns unique-index violations into gorm.ErrDuplicatedKey.
func New(db *gorm.DB) *Gormstore {
	return &Gormstore{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrDuplicate
	}
	return err
}

// Users

func (s *Gormstore) CreateUser(u *models.User) error {
	u.Email = strings.ToLower(u.Email)
	return translate(s.db.Create(u).Error)
}

func (s *Gormstore) UserByID(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Gormstore) UserByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Gormstore) UpdateUser(u *models.User) error {
	return translate(s.db.Save(u).Error)
}

func (s *Gormstore) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// Categories

func (s *Gormstore) CreateCategory(c *models.Category) error {
	return translate(s.db.Create(c).Error)
}

func (s *Gormstore) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("id").Find(&categories).Error; err != nil {
		return nil, translate(err)
	}
	return categories, nil
}

func (s *Gormstore) CreateSubcategory(sc *models.Subcategory) error {
	return translate(s.db.Create(sc).Error)
}

func (s *Gormstore) ListSubcategories(categoryID uint) ([]models.Subcategory, error) {
	var subcategories []models.Subcategory
	if err := s.db.Where("category_id = ?", categoryID).Order("id").Find(&subcategories).Error; err != nil {
		return nil, translate(err)
	}
	return subcategories, nil
}
