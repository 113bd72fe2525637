package models

// NotificationType classifies a notification for display.
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool {
	switch t {
	case NotifyInfo, NotifySuccess, NotifyWarning, NotifyError:
		return true
	}
	return false
}

// Notification is one entry in the dashboard's notification feed.
//
// Notifications are produced by the store as a side effect of client and
// payment mutations, or added directly. The feed keeps the 50 most recent
// entries, newest first.
type Notification struct {
	// ID is the unique identifier for the notification (UUID format).
	ID string `json:"id"`

	// Title is a short headline (e.g. "Payment Received").
	Title string `json:"title"`

	// Message is the human-readable detail line.
	Message string `json:"message"`

	// Type classifies the notification for display.
	Type NotificationType `json:"type"`

	// Read is set once the user has acknowledged the notification.
	Read bool `json:"read"`

	// CreatedAt is the Unix timestamp when the notification was created.
	CreatedAt int64 `json:"createdAt"`

	// OwnerID is the User the notification belongs to.
	OwnerID string `json:"userId"`
}
