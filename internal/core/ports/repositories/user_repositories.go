package repositories

import (
	"context"

	"github.com/finratios/fin_report_app/internal/core/domain"
)

// UserRepository persists the identities the session collaborator vends.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
