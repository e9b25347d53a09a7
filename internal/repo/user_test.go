package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nlecomte/filegate/internal/models"
)

func initTestRepo(t *testing.T) *UserRepo {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return &UserRepo{DB: db}
}

func newUser(username string) *models.User {
	return &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotarealhashnotar",
		Role:         models.RoleUser,
	}
}

func TestFindByUsername(t *testing.T) {
	r := initTestRepo(t)
	require.NoError(t, r.Create(context.Background(), newUser("alice")))

	user, err := r.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.NotEmpty(t, user.ID)

	_, err = r.FindByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateDuplicate(t *testing.T) {
	r := initTestRepo(t)
	require.NoError(t, r.Create(context.Background(), newUser("alice")))

	err := r.Create(context.Background(), newUser("alice"))
	require.ErrorIs(t, err, ErrDuplicateUser)

	dupEmail := newUser("alice2")
	dupEmail.Email = "alice@example.com"
	err = r.Create(context.Background(), dupEmail)
	require.ErrorIs(t, err, ErrDuplicateUser)
}

func TestMaxPasswordHashLength(t *testing.T) {
	r := initTestRepo(t)

	maxLen, err := r.MaxPasswordHashLength(context.Background())
	require.NoError(t, err)
	require.Zero(t, maxLen)

	plain := newUser("legacy")
	plain.PasswordHash = "admin123"
	require.NoError(t, r.Create(context.Background(), plain))

	maxLen, err = r.MaxPasswordHashLength(context.Background())
	require.NoError(t, err)
	require.Equal(t, 8, maxLen)
}
