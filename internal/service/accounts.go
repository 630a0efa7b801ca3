package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bikeshop/internal/events"
	"bikeshop/internal/hash"
	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

const RoleCustomer = "customer"

// Accounts covers registration and the basic credential check. No
// session token is issued; the caller keeps the returned identity for
// the duration of its session.
type Accounts struct {
	Store  storage.Store
	Events *events.Producer
	Log    *slog.Logger
}

func (a *Accounts) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username required", storage.ErrValidation)
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         RoleCustomer,
	}

	err = a.Store.Atomically(ctx, func(s storage.Store) error {
		id, err := s.Users().Create(ctx, user)
		if err != nil {
			return err
		}
		user.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.log().Info("user registered", "user_id", user.ID, "username", user.Username)
	a.publish(ctx, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return user, nil
}

func (a *Accounts) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.Store.Users().GetByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, storage.ErrAuthFailure
	}
	if err != nil {
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, storage.ErrAuthFailure
	}

	a.publish(ctx, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return user, nil
}

func (a *Accounts) log() *slog.Logger {
	if a.Log != nil {
		return a.Log
	}
	return slog.Default()
}

func (a *Accounts) publish(ctx context.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.Events.Publish(ctx, events.TopicUsers, key, event); err != nil {
		a.log().Error("kafka publish failed", "topic", events.TopicUsers, "error", err)
	}
}
