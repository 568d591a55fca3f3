package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// UserLookup exposes recipient details to packages that must not import the
// auth service surface (notification rendering after payment confirmation).
type UserLookup struct {
	repo Repository
}

func NewUserLookup(repo Repository) *UserLookup {
	return &UserLookup{
		repo: repo,
	}
}

// GetUserByID fetches user details by ID and returns email, firstName, lastName
func (ul *UserLookup) GetUserByID(ctx context.Context, userID uuid.UUID) (email, firstName, lastName string, err error) {
	user, err := ul.repo.GetUserByID(ctx, userID.String())
	if err != nil {
		return "", "", "", fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}

	return user.Email, user.FirstName, user.LastName, nil
}
