package services

// ServiceContainer bundles the service facades for route registration.
type ServiceContainer struct {
	User          UserSvc
	Company       CompanySvc
	FinancialData FinancialDataSvc
	Credit        CreditSvc
	Report        ReportSvc
}
