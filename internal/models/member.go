package models

import "strings"

// Member represents one member of the club roster.
type Member struct {
	// Name is the display identity of the member. Matching against payer
	// names normalizes it to lower-case with surrounding whitespace trimmed;
	// names are assumed unique after normalization.
	Name string

	// Email is optional. Members without an email never receive
	// notifications but are still charged.
	Email string

	// PaymentStatus maps a period label (ledger column) to the raw status
	// string stored in the ledger. Use PaidFor to interpret it.
	PaymentStatus map[string]string
}

// PaidFor reports whether the member's status for the given period
// normalizes to paid. Both "paid" and "pago" count, case-insensitively;
// any other value (including absence) is treated as unpaid.
func (m *Member) PaidFor(period string) bool {
	status := strings.ToLower(strings.TrimSpace(m.PaymentStatus[period]))
	return status == "paid" || status == "pago"
}
