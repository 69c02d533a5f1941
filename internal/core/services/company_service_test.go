package services_test

import (
	"context"
	"testing"

	"github.com/finratios/fin_report_app/internal/apperrors"
	"github.com/finratios/fin_report_app/internal/core/domain"
	portssvc "github.com/finratios/fin_report_app/internal/core/ports/services"
	"github.com/finratios/fin_report_app/internal/core/services"
	"github.com/finratios/fin_report_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CompanyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCompanyRepository
	service  portssvc.CompanySvc
}

func (suite *CompanyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCompanyRepository)
	suite.service = services.NewCompanyService(suite.mockRepo)
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_Success() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	req := dto.CreateCompanyRequest{Code: "ACME", Name: "Acme Holding", Sector: "Manufacturing"}

	suite.mockRepo.On("SaveCompany", ctx, mock.MatchedBy(func(c domain.Company) bool {
		return c.Code == req.Code && c.Name == req.Name && c.OwnerUserID == ownerID && c.CreatedBy == ownerID
	})).Return(nil).Once()

	company, err := suite.service.CreateCompany(ctx, req, ownerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(company)
	suite.NotEmpty(company.CompanyID)
	suite.Equal(ownerID, company.OwnerUserID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CompanyServiceTestSuite) TestGetCompany_ForeignOwner_Forbidden() {
	ctx := context.Background()
	company := &domain.Company{CompanyID: uuid.NewString(), OwnerUserID: uuid.NewString()}
	stranger := portssvc.Caller{UserID: uuid.NewString(), Role: domain.RoleUser}

	suite.mockRepo.On("FindCompanyByID", ctx, company.CompanyID).Return(company, nil).Once()

	got, err := suite.service.GetCompany(ctx, company.CompanyID, stranger)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CompanyServiceTestSuite) TestGetCompany_AdminSeesAll() {
	ctx := context.Background()
	company := &domain.Company{CompanyID: uuid.NewString(), OwnerUserID: uuid.NewString()}
	admin := portssvc.Caller{UserID: uuid.NewString(), Role: domain.RoleAdmin}

	suite.mockRepo.On("FindCompanyByID", ctx, company.CompanyID).Return(company, nil).Once()

	got, err := suite.service.GetCompany(ctx, company.CompanyID, admin)

	suite.Require().NoError(err)
	suite.Equal(company, got)
}

func (suite *CompanyServiceTestSuite) TestUpdateCompany_OnlyNameAndSector() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	caller := portssvc.Caller{UserID: ownerID, Role: domain.RoleUser}
	existing := &domain.Company{CompanyID: uuid.NewString(), Code: "ACME", Name: "Old", Sector: "Old", OwnerUserID: ownerID}
	newName, newSector := "New Name", "Energy"
	req := dto.UpdateCompanyRequest{Name: &newName, Sector: &newSector}

	suite.mockRepo.On("FindCompanyByID", ctx, existing.CompanyID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCompany", ctx, mock.MatchedBy(func(c domain.Company) bool {
		return c.Name == "New Name" && c.Sector == "Energy" && c.Code == "ACME" && c.LastUpdatedBy == ownerID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateCompany(ctx, existing.CompanyID, req, caller)

	suite.Require().NoError(err)
	suite.Equal("New Name", updated.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCompanyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}
