package service

import (
	"context"
	"time"

	"github.com/nlecomte/filegate/internal/events"
	"github.com/nlecomte/filegate/internal/hash"
	"github.com/nlecomte/filegate/internal/logging"
	"github.com/nlecomte/filegate/internal/metrics"
	"github.com/nlecomte/filegate/internal/models"
	"github.com/nlecomte/filegate/internal/repo"
)

type UserService struct {
	Users      *repo.UserRepo
	Metrics    *metrics.Metrics
	Events     *events.Producer
	BcryptCost int
}

// Register stores a new account for an already validated email/password pair.
// The stored role is always "user": whatever role the client sent was dropped
// before this point, and nothing here reads request data.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.register")

	passwordHash, err := hash.HashPassword(password, s.BcryptCost)
	if err != nil {
		s.Metrics.Registrations.WithLabelValues(metrics.StatusFailed).Inc()
		l.Error("registration failed", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Username:     email,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		s.Metrics.Registrations.WithLabelValues(metrics.StatusFailed).Inc()
		l.Warn("registration failed", "error", err)
		return nil, err
	}

	s.Metrics.Registrations.WithLabelValues(metrics.StatusSuccess).Inc()
	l.Info("user registered", "user_id", user.ID.String())

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	event := map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID.String(),
		"username": user.Username,
	}
	if err := s.Events.PublishEvent(pubCtx, user.ID.String(), event); err != nil {
		l.Error("event publish failed", "type", "user_registered", "error", err)
	}

	return user, nil
}
