package domain

// User is the authentication collaborator's view of an identity. The pipeline
// only needs the id and role; the password hash backs the local login endpoint.
type User struct {
	UserID       string   `json:"userID"` // Primary key (UUID)
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AuditFields
}
