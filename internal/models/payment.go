package models

// PaymentMethod identifies how a payment was made.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodCard   PaymentMethod = "card"
	MethodEFT    PaymentMethod = "eft"
	MethodPayPal PaymentMethod = "paypal"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodEFT, MethodPayPal:
		return true
	}
	return false
}

// PaymentStatus tracks a payment through its settlement lifecycle.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Payment represents a payment received against a client's balance.
//
// Payments are never deleted individually; they are removed only when the
// referenced Client is deleted (cascade).
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `json:"id"`

	// ClientID references the Client this payment settles against.
	ClientID string `json:"clientId"`

	// Amount is the payment amount in rand.
	Amount float64 `json:"amount"`

	// Method is how the payment was made.
	Method PaymentMethod `json:"method"`

	// Status is the settlement state of the payment.
	Status PaymentStatus `json:"status"`

	// Reference is a free-text reconciliation reference (e.g. "EFT-001-2024").
	Reference string `json:"reference"`

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64 `json:"createdAt"`

	// OwnerID is the User who recorded this payment.
	OwnerID string `json:"userId"`
}
