package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/finratios/fin_report_app/internal/adapters/database/memory"
	"github.com/finratios/fin_report_app/internal/apperrors"
	"github.com/finratios/fin_report_app/internal/core/domain"
	portssvc "github.com/finratios/fin_report_app/internal/core/ports/services"
	"github.com/finratios/fin_report_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CreditAccountRepository ---
type MockCreditAccountRepository struct {
	mock.Mock
}

func (m *MockCreditAccountRepository) SaveCreditAccount(ctx context.Context, account domain.CreditAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockCreditAccountRepository) FindCreditAccountByUserID(ctx context.Context, userID string) (*domain.CreditAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditAccount), args.Error(1)
}

func (m *MockCreditAccountRepository) DebitIfSufficient(ctx context.Context, userID string, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreditAccountRepository) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite ---
type CreditServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCreditAccountRepository
	service  portssvc.CreditSvc
}

func (suite *CreditServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCreditAccountRepository)
	suite.service = services.NewCreditService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CreditServiceTestSuite) TestAuthorizeAndDebit_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	account := &domain.CreditAccount{UserID: userID, Balance: 10, Role: domain.RoleUser}

	suite.mockRepo.On("FindCreditAccountByUserID", ctx, userID).Return(account, nil).Once()
	suite.mockRepo.On("DebitIfSufficient", ctx, userID, int64(3)).Return(int64(7), nil).Once()

	receipt, err := suite.service.AuthorizeAndDebit(ctx, userID, 3)

	suite.Require().NoError(err)
	suite.Require().NotNil(receipt)
	suite.Equal(int64(3), receipt.Debited)
	suite.Equal(int64(7), receipt.RemainingBalance)
	suite.False(receipt.Bypassed)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CreditServiceTestSuite) TestAuthorizeAndDebit_AdminBypass() {
	ctx := context.Background()
	userID := uuid.NewString()
	account := &domain.CreditAccount{UserID: userID, Balance: 2, Role: domain.RoleAdmin}

	suite.mockRepo.On("FindCreditAccountByUserID", ctx, userID).Return(account, nil).Once()

	receipt, err := suite.service.AuthorizeAndDebit(ctx, userID, 1000000)

	suite.Require().NoError(err)
	suite.Require().NotNil(receipt)
	suite.True(receipt.Bypassed)
	suite.Equal(int64(0), receipt.Debited)
	suite.Equal(int64(2), receipt.RemainingBalance)
	// The ledger is never touched on the bypass path.
	suite.mockRepo.AssertNotCalled(suite.T(), "DebitIfSufficient", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CreditServiceTestSuite) TestAuthorizeAndDebit_Insufficient() {
	ctx := context.Background()
	userID := uuid.NewString()
	account := &domain.CreditAccount{UserID: userID, Balance: 2, Role: domain.RoleUser}
	insufficientErr := &apperrors.InsufficientCreditsError{Have: 2, Need: 5}

	suite.mockRepo.On("FindCreditAccountByUserID", ctx, userID).Return(account, nil).Once()
	suite.mockRepo.On("DebitIfSufficient", ctx, userID, int64(5)).Return(int64(0), insufficientErr).Once()

	receipt, err := suite.service.AuthorizeAndDebit(ctx, userID, 5)

	suite.Require().Error(err)
	suite.Nil(receipt)
	suite.ErrorIs(err, apperrors.ErrInsufficientCredits)

	var detailed *apperrors.InsufficientCreditsError
	suite.Require().ErrorAs(err, &detailed)
	suite.Equal(int64(2), detailed.Have)
	suite.Equal(int64(5), detailed.Need)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CreditServiceTestSuite) TestAuthorizeAndDebit_AccountNotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("FindCreditAccountByUserID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	receipt, err := suite.service.AuthorizeAndDebit(ctx, userID, 1)

	suite.Require().Error(err)
	suite.Nil(receipt)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CreditServiceTestSuite) TestCredit_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	updated := &domain.CreditAccount{UserID: userID, Balance: 15, Role: domain.RoleUser}

	suite.mockRepo.On("Credit", ctx, userID, int64(5)).Return(int64(15), nil).Once()
	suite.mockRepo.On("FindCreditAccountByUserID", ctx, userID).Return(updated, nil).Once()

	account, err := suite.service.Credit(ctx, userID, 5)

	suite.Require().NoError(err)
	suite.Equal(int64(15), account.Balance)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CreditServiceTestSuite) TestEnsureAccount_CreatesWhenMissing() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("FindCreditAccountByUserID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCreditAccount", ctx, mock.MatchedBy(func(a domain.CreditAccount) bool {
		return a.UserID == userID && a.Balance == 0 && a.Role == domain.RoleUser
	})).Return(nil).Once()

	account, err := suite.service.EnsureAccount(ctx, userID, domain.RoleUser)

	suite.Require().NoError(err)
	suite.Equal(int64(0), account.Balance)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CreditServiceTestSuite) TestEnsureAccount_IdempotentOnDuplicate() {
	ctx := context.Background()
	userID := uuid.NewString()
	existing := &domain.CreditAccount{UserID: userID, Balance: 4, Role: domain.RoleUser}

	suite.mockRepo.On("FindCreditAccountByUserID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCreditAccount", ctx, mock.AnythingOfType("domain.CreditAccount")).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindCreditAccountByUserID", ctx, userID).Return(existing, nil).Once()

	account, err := suite.service.EnsureAccount(ctx, userID, domain.RoleUser)

	suite.Require().NoError(err)
	suite.Equal(int64(4), account.Balance)
	suite.mockRepo.AssertExpectations(suite.T())
}

// TestConcurrentDebit_ExactlyOneWins drives the real in-memory repository:
// with a balance of 1, two concurrent debits of 1 must resolve to exactly one
// success and one insufficient-credits rejection, with a final balance of 0.
func (suite *CreditServiceTestSuite) TestConcurrentDebit_ExactlyOneWins() {
	ctx := context.Background()
	userID := uuid.NewString()
	repo := memory.NewCreditAccountRepository()
	suite.Require().NoError(repo.SaveCreditAccount(ctx, domain.CreditAccount{
		UserID: userID, Balance: 1, Role: domain.RoleUser,
	}))
	svc := services.NewCreditService(repo)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.AuthorizeAndDebit(ctx, userID, 1)
		}(i)
	}
	wg.Wait()

	var successes, rejections int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientCredits):
			rejections++
		}
	}
	suite.Equal(1, successes)
	suite.Equal(1, rejections)

	account, err := repo.FindCreditAccountByUserID(ctx, userID)
	suite.Require().NoError(err)
	suite.Equal(int64(0), account.Balance)
}

func TestCreditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CreditServiceTestSuite))
}
