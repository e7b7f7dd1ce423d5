package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/donelist-dev/donelist/internal/models"
	"gorm.io/gorm"
)

// TodoRepository owns todo rows and their tag associations. Every operation
// is scoped to the owning user; ownership never changes after creation.
type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

type CreateTodoInput struct {
	Title      string
	CategoryID *uint
	TagIDs     []uint
}

type UpdateTodoInput struct {
	Title         *string
	Completed     *bool
	CategoryID    *uint
	ClearCategory bool
	TagIDs        *[]uint
}

type ListTodosFilter struct {
	CategoryID     *uint
	TagID          *uint
	IncludeDeleted bool
}

// Create inserts a todo with its tag associations in one transaction.
// A referenced category or tag must exist and be live.
func (r *TodoRepository) Create(ctx context.Context, userID uint, input CreateTodoInput) (*models.Todo, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", ErrInvalidInput)
	}

	todo := models.Todo{
		Title:      strings.TrimSpace(input.Title),
		UserID:     userID,
		CategoryID: input.CategoryID,
	}

	tagIDs := uniqueIDs(input.TagIDs)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.CategoryID != nil {
			if err := checkCategoryLive(tx, *input.CategoryID); err != nil {
				return err
			}
		}

		if err := checkTagsLive(tx, tagIDs); err != nil {
			return err
		}

		if err := tx.Create(&todo).Error; err != nil {
			return fmt.Errorf("failed to create todo: %w", err)
		}

		return insertTodoTags(tx, todo.ID, tagIDs)
	})

	if err != nil {
		return nil, err
	}

	return &todo, nil
}

// Update applies a partial update on an owned todo. A non-nil TagIDs
// replaces the todo's tag set wholesale within the same transaction.
func (r *TodoRepository) Update(ctx context.Context, userID, todoID uint, input UpdateTodoInput) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var todo models.Todo

		if err := tx.Where("user_id = ?", userID).First(&todo, todoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("todo %d: %w", todoID, ErrNotFound)
			}
			return fmt.Errorf("failed to get todo: %w", err)
		}

		updates := make(map[string]interface{})

		if input.Title != nil {
			if strings.TrimSpace(*input.Title) == "" {
				return fmt.Errorf("title is required: %w", ErrInvalidInput)
			}
			updates["title"] = strings.TrimSpace(*input.Title)
		}

		if input.Completed != nil {
			updates["completed"] = *input.Completed
		}

		if input.ClearCategory {
			updates["category_id"] = nil
		} else if input.CategoryID != nil {
			if err := checkCategoryLive(tx, *input.CategoryID); err != nil {
				return err
			}
			updates["category_id"] = *input.CategoryID
		}

		if len(updates) > 0 {
			if err := tx.Model(&todo).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update todo: %w", err)
			}
		}

		if input.TagIDs == nil {
			return nil
		}

		tagIDs := uniqueIDs(*input.TagIDs)

		if err := checkTagsLive(tx, tagIDs); err != nil {
			return err
		}

		if err := tx.Where("todo_id = ?", todo.ID).Delete(&models.TodoTag{}).Error; err != nil {
			return fmt.Errorf("failed to clear todo tags: %w", err)
		}

		return insertTodoTags(tx, todo.ID, tagIDs)
	})
}

// Get loads an owned todo with its category and tags.
func (r *TodoRepository) Get(ctx context.Context, userID, todoID uint, includeDeleted bool) (*models.Todo, error) {
	query := r.db.WithContext(ctx).Preload("Category").Preload("Tags")

	if includeDeleted {
		query = query.Unscoped()
	}

	var todo models.Todo

	if err := query.Where("user_id = ?", userID).First(&todo, todoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("todo %d: %w", todoID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return &todo, nil
}

// List returns the user's todos, newest last. Soft-deleted rows are
// excluded unless the filter asks for them; join rows are untouched by
// soft deletion.
func (r *TodoRepository) List(ctx context.Context, userID uint, filter ListTodosFilter) ([]models.Todo, error) {
	query := r.db.WithContext(ctx).Preload("Category").Preload("Tags")

	if filter.IncludeDeleted {
		query = query.Unscoped()
	}

	query = query.Where("todos.user_id = ?", userID)

	if filter.CategoryID != nil {
		query = query.Where("todos.category_id = ?", *filter.CategoryID)
	}

	if filter.TagID != nil {
		query = query.Joins("JOIN todo_tags ON todo_tags.todo_id = todos.id").
			Where("todo_tags.tag_id = ?", *filter.TagID)
	}

	var todos []models.Todo

	if err := query.Order("todos.id").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	return todos, nil
}

// SoftDelete marks an owned todo as deleted. Join rows stay in place;
// they only cascade on a hard delete.
func (r *TodoRepository) SoftDelete(ctx context.Context, userID, todoID uint) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Todo{}, todoID)

	if result.Error != nil {
		return fmt.Errorf("failed to delete todo: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("todo %d: %w", todoID, ErrNotFound)
	}

	return nil
}

func checkCategoryLive(tx *gorm.DB, categoryID uint) error {
	var category models.Category

	if err := tx.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
		}
		return fmt.Errorf("failed to check category: %w", err)
	}

	return nil
}

func checkTagsLive(tx *gorm.DB, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}

	var count int64

	if err := tx.Model(&models.Tag{}).Where("id IN ?", tagIDs).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check tags: %w", err)
	}

	if count != int64(len(tagIDs)) {
		return fmt.Errorf("one or more tags: %w", ErrNotFound)
	}

	return nil
}

func insertTodoTags(tx *gorm.DB, todoID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}

	rows := make([]models.TodoTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, models.TodoTag{TodoID: todoID, TagID: tagID})
	}

	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to attach tags: %w", err)
	}

	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))

	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	return unique
}
