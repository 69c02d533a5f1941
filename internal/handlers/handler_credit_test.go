package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finratios/fin_report_app/internal/core/domain"
	portssvc "github.com/finratios/fin_report_app/internal/core/ports/services"
	"github.com/finratios/fin_report_app/internal/dto"
	"github.com/finratios/fin_report_app/internal/handlers"
	"github.com/finratios/fin_report_app/internal/middleware"
	"github.com/finratios/fin_report_app/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CreditService ---
type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) AuthorizeAndDebit(ctx context.Context, userID string, required int64) (*domain.DebitReceipt, error) {
	args := m.Called(ctx, userID, required)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebitReceipt), args.Error(1)
}

func (m *MockCreditService) Credit(ctx context.Context, userID string, amount int64) (*domain.CreditAccount, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditAccount), args.Error(1)
}

func (m *MockCreditService) GetAccount(ctx context.Context, userID string) (*domain.CreditAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditAccount), args.Error(1)
}

func (m *MockCreditService) EnsureAccount(ctx context.Context, userID string, role domain.UserRole) (*domain.CreditAccount, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditAccount), args.Error(1)
}

var _ portssvc.CreditSvc = (*MockCreditService)(nil)

// --- Test Suite ---
type CreditHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockCreditService *MockCreditService
	jwtSecret         string
}

func (suite *CreditHandlerTestSuite) generateTestToken(userID string, role domain.UserRole) string {
	claims := middleware.AuthClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "frs-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *CreditHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockCreditService = new(MockCreditService)

	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTIssuer:         "frs-test",
		JWTExpiryDuration: time.Hour,
	}
	services := &portssvc.ServiceContainer{Credit: suite.mockCreditService}
	handlers.RegisterRoutes(suite.router, cfg, services, nil)
}

func (suite *CreditHandlerTestSuite) postTopUp(body dto.TopUpRequest, token string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/credits/topup", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *CreditHandlerTestSuite) TestTopUp_ZeroAmount_Succeeds() {
	adminID := uuid.NewString()
	targetID := uuid.NewString()
	amount := int64(0)
	token := suite.generateTestToken(adminID, domain.RoleAdmin)

	// Crediting zero is a no-op deposit, not a validation failure.
	suite.mockCreditService.On("Credit", mock.Anything, targetID, int64(0)).
		Return(&domain.CreditAccount{UserID: targetID, Balance: 10, Role: domain.RoleUser, AuditFields: domain.AuditFields{LastUpdatedAt: time.Now().UTC()}}, nil).Once()

	w := suite.postTopUp(dto.TopUpRequest{UserID: targetID, Amount: &amount}, token)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CreditAccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(targetID, resp.UserID)
	suite.Equal(int64(10), resp.Balance)
	suite.mockCreditService.AssertExpectations(suite.T())
}

func (suite *CreditHandlerTestSuite) TestTopUp_NegativeAmount_BadRequest() {
	adminID := uuid.NewString()
	amount := int64(-5)
	token := suite.generateTestToken(adminID, domain.RoleAdmin)

	w := suite.postTopUp(dto.TopUpRequest{UserID: uuid.NewString(), Amount: &amount}, token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCreditService.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CreditHandlerTestSuite) TestTopUp_MissingAmount_BadRequest() {
	adminID := uuid.NewString()
	token := suite.generateTestToken(adminID, domain.RoleAdmin)

	w := suite.postTopUp(dto.TopUpRequest{UserID: uuid.NewString()}, token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCreditService.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CreditHandlerTestSuite) TestTopUp_NonAdmin_Forbidden() {
	userID := uuid.NewString()
	amount := int64(50)
	token := suite.generateTestToken(userID, domain.RoleUser)

	w := suite.postTopUp(dto.TopUpRequest{UserID: uuid.NewString(), Amount: &amount}, token)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockCreditService.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreditHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CreditHandlerTestSuite))
}
