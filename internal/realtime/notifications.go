package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reposelink/reposelink/internal/metrics"
	"github.com/reposelink/reposelink/internal/models"
)

// maxNotifications caps the feed at the most recent entries.
const maxNotifications = 50

// NotificationInput is the field set required to add a notification.
// ID and CreatedAt are assigned by the store; Read defaults to false.
type NotificationInput struct {
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	Type    models.NotificationType `json:"type"`
	OwnerID string                  `json:"userId"`
}

func (in NotificationInput) validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title required", ErrValidation)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: unknown notification type %q", ErrValidation, in.Type)
	}
	return nil
}

// AddNotification prepends a notification to the feed and truncates it to the
// 50 most recent entries.
func (s *Store) AddNotification(ctx context.Context, in NotificationInput) (*models.Notification, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	metrics.StoreOperations.WithLabelValues("realtime", "add_notification").Inc()

	n := s.addNotificationLocked(in)
	out := n
	return &out, nil
}

// addNotificationLocked prepends the notification and applies the feed cap.
// Caller must hold s.mu and is responsible for input validity.
func (s *Store) addNotificationLocked(in NotificationInput) models.Notification {
	n := models.Notification{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Message:   in.Message,
		Type:      in.Type,
		CreatedAt: time.Now().Unix(),
		OwnerID:   in.OwnerID,
	}

	s.notifications = append([]models.Notification{n}, s.notifications...)
	if len(s.notifications) > maxNotifications {
		metrics.NotificationsDropped.Add(float64(len(s.notifications) - maxNotifications))
		s.notifications = s.notifications[:maxNotifications]
	}
	s.refreshUnreadGaugeLocked()
	return n
}

// MarkNotificationRead sets the read flag on the matching notification.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	metrics.StoreOperations.WithLabelValues("realtime", "mark_notification_read").Inc()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			s.refreshUnreadGaugeLocked()
			return nil
		}
	}
	return fmt.Errorf("notification %s: %w", id, ErrNotFound)
}

// ClearNotifications empties the feed.
func (s *Store) ClearNotifications(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	metrics.StoreOperations.WithLabelValues("realtime", "clear_notifications").Inc()

	s.notifications = nil
	s.refreshUnreadGaugeLocked()
}

// UnreadCount returns the number of notifications with read = false.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unreadLocked()
}

// Notifications returns a copy of the feed, newest first.
func (s *Store) Notifications() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *Store) unreadLocked() int {
	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *Store) refreshUnreadGaugeLocked() {
	metrics.UnreadNotifications.Set(float64(s.unreadLocked()))
}
