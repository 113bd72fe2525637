package models

// Plan identifies a subscription tier.
type Plan string

// Subscription tiers, ordered by price.
const (
	PlanFree         Plan = "free"
	PlanProfessional Plan = "professional"
	PlanPremium      Plan = "premium"
)

// Valid reports whether p is a known plan.
func (p Plan) Valid() bool {
	switch p {
	case PlanFree, PlanProfessional, PlanPremium:
		return true
	}
	return false
}

// User represents a registered funeral-home operator account.
//
// Exactly one User may be the current (authenticated) user of a session at a
// time. The credential used to authenticate is held separately by the session
// store and never appears on this struct.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Email is the user's email address (unique, used for login).
	Email string `json:"email"`

	// FirstName and LastName are the user's display names.
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// Company is the funeral home the user operates.
	Company string `json:"company"`

	// Phone is the user's contact number.
	Phone string `json:"phone"`

	// Plan is the user's subscription tier. New registrations start on PlanFree.
	Plan Plan `json:"plan"`

	// Avatar is an optional profile picture URL.
	Avatar string `json:"avatar,omitempty"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"createdAt"`

	// LastLogin is the Unix timestamp of the most recent successful login.
	LastLogin int64 `json:"lastLogin"`
}
