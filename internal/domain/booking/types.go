package booking

type Status string

const (
	StatusHeld           Status = "held"
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmed"
	StatusCancelled      Status = "cancelled"
	StatusCompleted      Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusHeld, StatusPendingPayment, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// Terminal statuses admit no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Active statuses block the booking's slot for other customers.
func (s Status) BlocksSlot() bool {
	switch s {
	case StatusHeld, StatusPendingPayment, StatusConfirmed:
		return true
	default:
		return false
	}
}

type PaymentType string

const (
	PaymentDeposit PaymentType = "deposit"
	PaymentFull    PaymentType = "full"
)

func (p PaymentType) IsValid() bool {
	return p == PaymentDeposit || p == PaymentFull
}
