package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/donelist-dev/donelist/internal/models"
	"github.com/donelist-dev/donelist/internal/types"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository owns user rows. Users are created either by the
// identity-provider callback (ResolveFromProfile) or by password signup.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ResolveFromProfile finds or creates the user for an identity-provider
// profile in a single upsert keyed on the provider subject id. Existing
// users only get their last_login bumped; a concurrent callback for the
// same subject cannot create a second row.
func (r *UserRepository) ResolveFromProfile(ctx context.Context, profile types.Profile) (*models.User, error) {
	if len(profile.Emails) == 0 {
		return nil, ErrEmailMissing
	}

	password, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to generate placeholder credential: %w", err)
	}

	now := time.Now()

	user := models.User{
		GoogleID:  &profile.Subject,
		Name:      profile.DisplayName,
		Email:     profile.Emails[0],
		Password:  string(password),
		LastLogin: now,
		Profile:   datatypes.JSON(profile.Raw),
	}

	if len(profile.Photos) > 0 {
		user.Avatar = profile.Photos[0]
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "google_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"last_login": now, "updated_at": now}),
	}, clause.Returning{}).Create(&user).Error

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIdentityPersistence, err)
	}

	return &user, nil
}

// Create inserts a password-credentialed user.
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	user := models.User{
		Name:      name,
		Email:     email,
		Password:  passwordHash,
		LastLogin: time.Now(),
	}

	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		// Covers the race between the existence check and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("user %q: %w", email, ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
