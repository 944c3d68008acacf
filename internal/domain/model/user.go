package model

import "time"

// Role classifies marketplace participants.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleRenter Role = "renter"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	return r == RoleBuyer || r == RoleSeller || r == RoleRenter
}

// UPIDetails holds a seller's virtual payment address.
type UPIDetails struct {
	UPIID string `json:"upi_id"`
	Name  string `json:"name,omitempty"`
}

// BankDetails holds a seller's bank account information.
type BankDetails struct {
	AccountName   string `json:"account_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	IFSCCode      string `json:"ifsc_code,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
}

// PaymentDetails describes how a seller receives payments. Snapshotted onto
// order items at creation so later edits never change a placed order.
type PaymentDetails struct {
	UPI  *UPIDetails  `json:"upi,omitempty"`
	Bank *BankDetails `json:"bank,omitempty"`
}

// User represents a registered marketplace participant.
type User struct {
	ID             int64
	Name           string
	Email          string
	PasswordHash   string
	Phone          string
	Address        string
	Role           Role
	PaymentDetails *PaymentDetails
	CreatedAt      time.Time
}
