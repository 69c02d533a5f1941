package domain

// Company represents a company whose statements can be analyzed.
// Immutable once created except name/sector edits and the audit timestamps.
type Company struct {
	CompanyID   string `json:"companyID"`   // Primary key (UUID)
	Code        string `json:"code"`        // Exchange/registry code, e.g. "ACME"
	Name        string `json:"name"`        // Display name
	Sector      string `json:"sector"`      // Free-form sector label
	OwnerUserID string `json:"ownerUserID"` // FK -> users.user_id
	AuditFields
}
