// Package repository defines persistence interfaces for the domain entities.
package repository

import (
	"context"
	"errors"

	"yatra/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository persists traveller accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	FindUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateUser(ctx context.Context, user *entity.User) error
}
