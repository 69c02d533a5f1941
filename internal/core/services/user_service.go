package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/finratios/fin_report_app/internal/apperrors"
	"github.com/finratios/fin_report_app/internal/core/domain"
	portsrepo "github.com/finratios/fin_report_app/internal/core/ports/repositories"
	portssvc "github.com/finratios/fin_report_app/internal/core/ports/services"
	"github.com/finratios/fin_report_app/internal/dto"
	"github.com/finratios/fin_report_app/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo  portsrepo.UserRepository
	creditSvc portssvc.CreditSvc
}

// NewUserService creates a new user service. Registration also opens the
// user's credit account so the ledger never sees an unknown account.
func NewUserService(userRepo portsrepo.UserRepository, creditSvc portssvc.CreditSvc) portssvc.UserSvc {
	return &userService{userRepo: userRepo, creditSvc: creditSvc}
}

var _ portssvc.UserSvc = (*userService)(nil)

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, err
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		AuditFields: domain.AuditFields{
			CreatedAt:     time.Now().UTC(),
			LastUpdatedAt: time.Now().UTC(),
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	if _, err := s.creditSvc.EnsureAccount(ctx, user.UserID, user.Role); err != nil {
		s.LogError(ctx, err, "Failed to open credit account", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		// Same failure as a wrong password, so usernames cannot be probed.
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}
