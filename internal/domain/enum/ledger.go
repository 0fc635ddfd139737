package enum

// LedgerDirection represents the business direction of a loyalty-points
// ledger transaction
type LedgerDirection string

const (
	LedgerDirectionUsage LedgerDirection = "usage"
	LedgerDirectionGrant LedgerDirection = "grant"
)

func (d LedgerDirection) String() string {
	return string(d)
}

// LedgerStatus represents the confirmation state of a ledger transaction.
// Transactions are appended as pending and confirmed by an external
// reconciliation process.
type LedgerStatus string

const (
	LedgerStatusPending   LedgerStatus = "pending"
	LedgerStatusConfirmed LedgerStatus = "confirmed"
	LedgerStatusCancelled LedgerStatus = "cancelled"
)

func (s LedgerStatus) String() string {
	return string(s)
}
