// Package seed creates the default accounts on an empty database and rehashes
// them when an older deployment left plaintext in the password column.
package seed

import (
	"context"
	"errors"

	"github.com/nlecomte/filegate/internal/hash"
	"github.com/nlecomte/filegate/internal/logging"
	"github.com/nlecomte/filegate/internal/models"
	"github.com/nlecomte/filegate/internal/repo"
)

type defaultUser struct {
	Username string
	Password string
	Email    string
	Role     string
}

var defaultUsers = []defaultUser{
	{Username: "admin", Password: "admin123", Email: "admin@example.com", Role: models.RoleAdmin},
	{Username: "user", Password: "password", Email: "user@example.com", Role: models.RoleUser},
	{Username: "alice", Password: "alice2024", Email: "alice@example.com", Role: models.RoleUser},
}

// bcrypt hashes are 60 bytes; anything shorter is a legacy plaintext row.
const minHashLength = 60

func Run(ctx context.Context, users *repo.UserRepo, bcryptCost int) error {
	l := logging.FromContext(ctx).With("svc", "seed")

	count, err := users.Count(ctx)
	if err != nil {
		return err
	}

	if count == 0 {
		for _, u := range defaultUsers {
			passwordHash, err := hash.HashPassword(u.Password, bcryptCost)
			if err != nil {
				return err
			}
			err = users.Create(ctx, &models.User{
				Username:     u.Username,
				Email:        u.Email,
				PasswordHash: passwordHash,
				Role:         u.Role,
			})
			if err != nil && !errors.Is(err, repo.ErrDuplicateUser) {
				return err
			}
		}
		l.Info("seed: default users created")
		return nil
	}

	maxLen, err := users.MaxPasswordHashLength(ctx)
	if err != nil {
		return err
	}
	if maxLen >= minHashLength {
		l.Info("seed check done")
		return nil
	}

	for _, u := range defaultUsers {
		passwordHash, err := hash.HashPassword(u.Password, bcryptCost)
		if err != nil {
			return err
		}
		if err := users.UpdatePasswordHash(ctx, u.Username, passwordHash); err != nil {
			return err
		}
	}
	l.Info("seed: default users rehashed")
	return nil
}
