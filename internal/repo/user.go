package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nlecomte/filegate/internal/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
)

type UserRepo struct {
	DB *gorm.DB
}

// FindByUsername looks up a user by exact username match. The condition goes
// through gorm's placeholder binding, never string concatenation.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUser
		}
		return err
	}
	return nil
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, username, passwordHash string) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Update("password_hash", passwordHash).Error
}

// MaxPasswordHashLength is used by the seeding migration to spot legacy rows
// that still carry plaintext instead of a bcrypt hash.
func (r *UserRepo) MaxPasswordHashLength(ctx context.Context) (int, error) {
	var maxLen *int
	err := r.DB.WithContext(ctx).Model(&models.User{}).
		Select("max(length(password_hash))").
		Scan(&maxLen).Error
	if err != nil {
		return 0, err
	}
	if maxLen == nil {
		return 0, nil
	}
	return *maxLen, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	// sqlite (used by the tests) reports unique violations as plain strings
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
