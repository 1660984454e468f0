package domain

// User roles
const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

// Transaction types
const (
	TypeDeposit  = "deposit"
	TypeWithdraw = "withdraw"
)

// StatusPending is the status every new transaction is created with.
// The core never transitions it; the display layer infers completion
// from EditedByAdmin combined with the type.
const StatusPending = "pending"
