// Package users stores accounts.
package users

import (
	"context"

	"github.com/saketh1999/consistency-cal-sub000/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills its ID. A taken email yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
