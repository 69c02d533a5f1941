package dto

import (
	"time"

	"github.com/finratios/fin_report_app/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to register a company.
type CreateCompanyRequest struct {
	Code   string `json:"code" binding:"required,alphanum,max=16"`
	Name   string `json:"name" binding:"required,max=160"`
	Sector string `json:"sector" binding:"max=80"`
}

// UpdateCompanyRequest allows editing name and sector only.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateCompanyRequest struct {
	Name   *string `json:"name"`
	Sector *string `json:"sector"`
}

// CompanyResponse mirrors domain.Company.
type CompanyResponse struct {
	CompanyID   string    `json:"companyID"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Sector      string    `json:"sector"`
	OwnerUserID string    `json:"ownerUserID"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// ToCompanyResponse converts a domain.Company to its response DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:   c.CompanyID,
		Code:        c.Code,
		Name:        c.Name,
		Sector:      c.Sector,
		OwnerUserID: c.OwnerUserID,
		CreatedAt:   c.CreatedAt,
		LastUpdated: c.LastUpdatedAt,
	}
}

// ToListCompanyResponse converts a slice of companies.
func ToListCompanyResponse(companies []domain.Company) []CompanyResponse {
	res := make([]CompanyResponse, len(companies))
	for i := range companies {
		res[i] = ToCompanyResponse(&companies[i])
	}
	return res
}
