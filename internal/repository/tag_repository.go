package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/donelist-dev/donelist/internal/models"
	"gorm.io/gorm"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(ctx context.Context, name string) (*models.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required: %w", ErrInvalidInput)
	}

	tag := models.Tag{Name: strings.TrimSpace(name)}

	if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return &tag, nil
}

func (r *TagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag

	if err := r.db.WithContext(ctx).Order("id").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return tags, nil
}

// SoftDelete marks a tag as deleted. Existing join rows are preserved;
// the cascade on todo_tags applies only to hard deletes.
func (r *TagRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Tag{}, id)

	if result.Error != nil {
		return fmt.Errorf("failed to delete tag: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("tag %d: %w", id, ErrNotFound)
	}

	return nil
}
