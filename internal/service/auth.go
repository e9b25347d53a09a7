package service

import (
	"context"
	"errors"
	"time"

	"github.com/nlecomte/filegate/internal/events"
	"github.com/nlecomte/filegate/internal/hash"
	"github.com/nlecomte/filegate/internal/logging"
	"github.com/nlecomte/filegate/internal/metrics"
	"github.com/nlecomte/filegate/internal/models"
	"github.com/nlecomte/filegate/internal/repo"
	"github.com/nlecomte/filegate/internal/tokens"
)

var (
	ErrMissingCredentials = errors.New("username and password required")
	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so the response never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService struct {
	Users     *repo.UserRepo
	Metrics   *metrics.Metrics
	Events    *events.Producer
	JWTSecret []byte
	TokenTTL  time.Duration
}

type LoginResult struct {
	Token string
	User  *models.User
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if username == "" || password == "" {
		s.Metrics.LoginAttempts.WithLabelValues(metrics.StatusFailed).Inc()
		return nil, ErrMissingCredentials
	}

	user, err := s.Users.FindByUsername(ctx, username)
	if err != nil {
		s.Metrics.LoginAttempts.WithLabelValues(metrics.StatusFailed).Inc()
		if errors.Is(err, repo.ErrUserNotFound) {
			l.Warn("login failed", "reason", "unknown username")
			return nil, ErrInvalidCredentials
		}
		l.Error("login failed", "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		s.Metrics.LoginAttempts.WithLabelValues(metrics.StatusFailed).Inc()
		l.Warn("login failed", "reason", "password mismatch", "username", username)
		return nil, ErrInvalidCredentials
	}

	token, err := tokens.SignAccessToken(user.ID.String(), user.Username, user.Role, s.JWTSecret, s.TokenTTL)
	if err != nil {
		s.Metrics.LoginAttempts.WithLabelValues(metrics.StatusFailed).Inc()
		l.Error("login failed", "reason", "cannot sign token", "error", err)
		return nil, err
	}

	s.Metrics.LoginAttempts.WithLabelValues(metrics.StatusSuccess).Inc()
	l.Info("login successful", "username", user.Username, "role", user.Role)

	s.publish(ctx, user, "user_logged_in")

	return &LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) publish(ctx context.Context, user *models.User, eventType string) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	event := map[string]any{
		"type":     eventType,
		"user_id":  user.ID.String(),
		"username": user.Username,
	}
	if err := s.Events.PublishEvent(pubCtx, user.ID.String(), event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "type", eventType, "error", err)
	}
}
