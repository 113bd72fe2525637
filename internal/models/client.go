package models

// ServiceType identifies the kind of funeral service arranged for a client.
type ServiceType string

const (
	ServiceTraditional ServiceType = "traditional"
	ServiceCremation   ServiceType = "cremation"
	ServiceMemorial    ServiceType = "memorial"
	ServiceBurial      ServiceType = "burial"
)

// Valid reports whether t is a known service type.
func (t ServiceType) Valid() bool {
	switch t {
	case ServiceTraditional, ServiceCremation, ServiceMemorial, ServiceBurial:
		return true
	}
	return false
}

// ClientStatus tracks a client engagement through its lifecycle.
type ClientStatus string

const (
	StatusConsultation ClientStatus = "consultation"
	StatusPlanning     ClientStatus = "planning"
	StatusScheduled    ClientStatus = "scheduled"
	StatusCompleted    ClientStatus = "completed"
	StatusCancelled    ClientStatus = "cancelled"
)

// Valid reports whether s is a known client status.
func (s ClientStatus) Valid() bool {
	switch s {
	case StatusConsultation, StatusPlanning, StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Client represents one funeral-service engagement.
type Client struct {
	// ID is the unique identifier for the client (UUID format).
	ID string `json:"id"`

	// FullName is the name of the deceased.
	FullName string `json:"fullName"`

	// Email, Phone and Address are the contact details of the family
	// representative handling the engagement.
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`

	// DateOfBirth is an ISO date string (YYYY-MM-DD).
	DateOfBirth string `json:"dateOfBirth"`

	// DateOfDeath is an ISO date string; empty while a pre-need consultation
	// is in progress.
	DateOfDeath string `json:"dateOfDeath,omitempty"`

	// ServiceType is the kind of service arranged.
	ServiceType ServiceType `json:"serviceType"`

	// ServiceDate and ServiceTime are set once the service is scheduled
	// (ISO date and HH:MM strings).
	ServiceDate string `json:"serviceDate,omitempty"`
	ServiceTime string `json:"serviceTime,omitempty"`

	// Status is the engagement's lifecycle state.
	Status ClientStatus `json:"status"`

	// TotalAmount is the quoted price for the engagement.
	// PaidAmount is the sum received so far; it is expected not to exceed
	// TotalAmount but the store does not enforce that.
	TotalAmount float64 `json:"totalAmount"`
	PaidAmount  float64 `json:"paidAmount"`

	// Notes is free-text detail about the engagement.
	Notes string `json:"notes"`

	// CreatedAt and UpdatedAt are Unix timestamps maintained by the store.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`

	// OwnerID is the User who manages this client.
	OwnerID string `json:"userId"`
}

// Outstanding returns the unpaid remainder of the engagement.
func (c Client) Outstanding() float64 {
	return c.TotalAmount - c.PaidAmount
}
