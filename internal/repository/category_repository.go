package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/donelist-dev/donelist/internal/models"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, name string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required: %w", ErrInvalidInput)
	}

	category := models.Category{Name: strings.TrimSpace(name)}

	if err := r.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &category, nil
}

func (r *CategoryRepository) Get(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category

	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category

	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// SoftDelete marks a category as deleted and clears the reference on its
// todos in the same transaction, so no live todo points at a dead category.
func (r *CategoryRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Category{}, id)

		if result.Error != nil {
			return fmt.Errorf("failed to delete category: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			return fmt.Errorf("category %d: %w", id, ErrNotFound)
		}

		err := tx.Model(&models.Todo{}).Where("category_id = ?", id).
			Update("category_id", nil).Error

		if err != nil {
			return fmt.Errorf("failed to clear category references: %w", err)
		}

		return nil
	})
}
