package domain

import "time"

// UserRole distinguishes regular users from admins. Admins bypass the credit
// gate entirely and can see every report.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// CreditAccount is the prepaid balance for one user. Credits are whole units;
// the balance is mutated only by the ledger's debit/credit operations.
type CreditAccount struct {
	UserID  string   `json:"userID"` // Primary key, FK -> users.user_id
	Balance int64    `json:"balance"`
	Role    UserRole `json:"role"`
	AuditFields
}

// DebitReceipt records the outcome of a successful authorize-and-debit call.
type DebitReceipt struct {
	UserID           string    `json:"userID"`
	Debited          int64     `json:"debited"`
	RemainingBalance int64     `json:"remainingBalance"`
	Bypassed         bool      `json:"bypassed"` // True for admin accounts; balance untouched
	DebitedAt        time.Time `json:"debitedAt"`
}
