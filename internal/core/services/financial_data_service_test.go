package services_test

import (
	"context"
	"testing"

	"github.com/finratios/fin_report_app/internal/adapters/database/memory"
	"github.com/finratios/fin_report_app/internal/apperrors"
	"github.com/finratios/fin_report_app/internal/core/domain"
	portssvc "github.com/finratios/fin_report_app/internal/core/ports/services"
	"github.com/finratios/fin_report_app/internal/core/services"
	"github.com/finratios/fin_report_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func f64(v float64) *float64 { return &v }

// --- Test Suite ---
type FinancialDataServiceTestSuite struct {
	suite.Suite
	mockDataRepo    *MockFinancialDataRepository
	mockCompanyRepo *MockCompanyRepository
	service         portssvc.FinancialDataSvc

	ownerID string
	caller  portssvc.Caller
	company *domain.Company
}

func (suite *FinancialDataServiceTestSuite) SetupTest() {
	suite.mockDataRepo = new(MockFinancialDataRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.service = services.NewFinancialDataService(suite.mockDataRepo, suite.mockCompanyRepo)

	suite.ownerID = uuid.NewString()
	suite.caller = portssvc.Caller{UserID: suite.ownerID, Role: domain.RoleUser}
	suite.company = &domain.Company{
		CompanyID:   uuid.NewString(),
		Code:        "ACME",
		Name:        "Acme Holding",
		OwnerUserID: suite.ownerID,
	}
}

func (suite *FinancialDataServiceTestSuite) validRequest() dto.CreateFinancialDataRequest {
	return dto.CreateFinancialDataRequest{
		CompanyID:               suite.company.CompanyID,
		FiscalYear:              2025,
		Cash:                    f64(50000),
		Receivables:             f64(40000),
		Inventory:               f64(30000),
		OtherCurrentAssets:      f64(30000),
		ShortTermDebt:           f64(25000),
		Payables:                f64(30000),
		OtherCurrentLiabilities: f64(20000),
	}
}

// --- Test Cases ---

func (suite *FinancialDataServiceTestSuite) TestSubmitFinancialData_DerivesCachedRatios() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.company.CompanyID).Return(suite.company, nil).Once()
	suite.mockDataRepo.On("UpsertFinancialData", ctx, mock.MatchedBy(func(d domain.FinancialData) bool {
		// CA=150000, CL=75000: current 2.00, quick 1.60, cash 0.67.
		return d.CurrentRatio != nil && *d.CurrentRatio == 2.0 &&
			d.QuickRatio != nil && *d.QuickRatio == 1.6 &&
			d.CashRatio != nil && *d.CashRatio == 0.67 &&
			d.CreatedBy == suite.ownerID
	})).Return(&domain.FinancialData{FinancialDataID: uuid.NewString(), FiscalYear: 2025}, nil).Once()

	saved, err := suite.service.SubmitFinancialData(ctx, req, suite.caller)

	suite.Require().NoError(err)
	suite.Require().NotNil(saved)
	suite.mockDataRepo.AssertExpectations(suite.T())
}

func (suite *FinancialDataServiceTestSuite) TestSubmitFinancialData_ZeroLiabilities_NoCachedLiquidity() {
	ctx := context.Background()
	req := suite.validRequest()
	req.ShortTermDebt = f64(0)
	req.Payables = f64(0)
	req.OtherCurrentLiabilities = f64(0)

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.company.CompanyID).Return(suite.company, nil).Once()
	suite.mockDataRepo.On("UpsertFinancialData", ctx, mock.MatchedBy(func(d domain.FinancialData) bool {
		return d.CurrentRatio == nil && d.QuickRatio == nil && d.CashRatio == nil
	})).Return(&domain.FinancialData{FinancialDataID: uuid.NewString()}, nil).Once()

	_, err := suite.service.SubmitFinancialData(ctx, req, suite.caller)

	suite.Require().NoError(err)
	suite.mockDataRepo.AssertExpectations(suite.T())
}

func (suite *FinancialDataServiceTestSuite) TestSubmitFinancialData_ForeignCompany_Forbidden() {
	ctx := context.Background()
	req := suite.validRequest()
	stranger := portssvc.Caller{UserID: uuid.NewString(), Role: domain.RoleUser}

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.company.CompanyID).Return(suite.company, nil).Once()

	saved, err := suite.service.SubmitFinancialData(ctx, req, stranger)

	suite.Require().Error(err)
	suite.Nil(saved)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockDataRepo.AssertNotCalled(suite.T(), "UpsertFinancialData", mock.Anything, mock.Anything)
}

func (suite *FinancialDataServiceTestSuite) TestSubmitFinancialData_CompanyNotFound() {
	ctx := context.Background()
	req := suite.validRequest()
	req.CompanyID = uuid.NewString()

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, req.CompanyID).Return(nil, apperrors.ErrNotFound).Once()

	saved, err := suite.service.SubmitFinancialData(ctx, req, suite.caller)

	suite.Require().Error(err)
	suite.Nil(saved)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// TestSubmitFinancialData_UpsertByYear exercises the real in-memory repository:
// resubmitting the same company+year replaces the figures under the original
// record id instead of creating a second record.
func (suite *FinancialDataServiceTestSuite) TestSubmitFinancialData_UpsertByYear() {
	ctx := context.Background()
	companyRepo := memory.NewCompanyRepository()
	dataRepo := memory.NewFinancialDataRepository()
	suite.Require().NoError(companyRepo.SaveCompany(ctx, *suite.company))
	svc := services.NewFinancialDataService(dataRepo, companyRepo)

	first, err := svc.SubmitFinancialData(ctx, suite.validRequest(), suite.caller)
	suite.Require().NoError(err)

	updated := suite.validRequest()
	updated.Cash = f64(99000)
	second, err := svc.SubmitFinancialData(ctx, updated, suite.caller)
	suite.Require().NoError(err)

	suite.Equal(first.FinancialDataID, second.FinancialDataID)
	suite.Equal(99000.0, second.Cash)

	records, err := svc.ListFinancialDataByCompany(ctx, suite.company.CompanyID, suite.caller)
	suite.Require().NoError(err)
	suite.Len(records, 1)
}

func (suite *FinancialDataServiceTestSuite) TestGetFinancialData_ChecksParentOwnership() {
	ctx := context.Background()
	data := &domain.FinancialData{
		FinancialDataID: uuid.NewString(),
		CompanyID:       suite.company.CompanyID,
		FiscalYear:      2025,
	}
	stranger := portssvc.Caller{UserID: uuid.NewString(), Role: domain.RoleUser}

	suite.mockDataRepo.On("FindFinancialDataByID", ctx, data.FinancialDataID).Return(data, nil).Twice()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.company.CompanyID).Return(suite.company, nil).Twice()

	got, err := suite.service.GetFinancialData(ctx, data.FinancialDataID, suite.caller)
	suite.Require().NoError(err)
	suite.Equal(data, got)

	_, err = suite.service.GetFinancialData(ctx, data.FinancialDataID, stranger)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestFinancialDataServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FinancialDataServiceTestSuite))
}
