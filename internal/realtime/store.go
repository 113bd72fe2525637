// Package realtime implements the owner-scoped domain store behind the
// dashboard: clients, payments, a notification feed, and a coarse
// online/offline + last-sync indicator.
//
// All data is held in memory. There is no real backend in this version of
// the product; a sync round only refreshes the connectivity flag and the
// last-sync timestamp after a simulated round trip.
package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reposelink/reposelink/internal/connectivity"
	"github.com/reposelink/reposelink/internal/metrics"
	"github.com/reposelink/reposelink/internal/models"
)

var (
	// ErrNotFound is returned when an operation references an absent id.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the input failed basic field validation.
	ErrValidation = errors.New("invalid input")
)

// Config configures a realtime Store.
type Config struct {
	// Probe supplies the ambient network-reachability signal.
	// Defaults to connectivity.Static(true).
	Probe connectivity.Probe

	// SyncLatency is the simulated round-trip delay of a sync round.
	// Zero means no delay (used by tests).
	SyncLatency time.Duration

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Store holds the dashboard's three collections and the sync indicator.
type Store struct {
	mu            sync.RWMutex
	clients       []models.Client
	payments      []models.Payment
	notifications []models.Notification
	online        bool
	lastSync      time.Time

	probe       connectivity.Probe
	syncLatency time.Duration
	logger      *slog.Logger
}

// New creates an empty store. The connectivity flag starts at the probe's
// current answer.
func New(cfg Config) *Store {
	probe := cfg.Probe
	if probe == nil {
		probe = connectivity.Static(true)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		probe:       probe,
		syncLatency: cfg.SyncLatency,
		logger:      logger,
		lastSync:    time.Now(),
	}
	s.online = probe.Online(context.Background())
	metrics.SetOnline(s.online)
	return s
}

// ClientInput is the field set required to add a client.
// ID and timestamps are assigned by the store.
type ClientInput struct {
	FullName    string              `json:"fullName"`
	Email       string              `json:"email"`
	Phone       string              `json:"phone"`
	Address     string              `json:"address"`
	DateOfBirth string              `json:"dateOfBirth"`
	DateOfDeath string              `json:"dateOfDeath,omitempty"`
	ServiceType models.ServiceType  `json:"serviceType"`
	ServiceDate string              `json:"serviceDate,omitempty"`
	ServiceTime string              `json:"serviceTime,omitempty"`
	Status      models.ClientStatus `json:"status"`
	TotalAmount float64             `json:"totalAmount"`
	PaidAmount  float64             `json:"paidAmount"`
	Notes       string              `json:"notes"`
	OwnerID     string              `json:"userId"`
}

func (in ClientInput) validate() error {
	if in.FullName == "" {
		return fmt.Errorf("%w: full name required", ErrValidation)
	}
	if !in.ServiceType.Valid() {
		return fmt.Errorf("%w: unknown service type %q", ErrValidation, in.ServiceType)
	}
	if !in.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	}
	if in.TotalAmount < 0 || in.PaidAmount < 0 {
		return fmt.Errorf("%w: amounts must not be negative", ErrValidation)
	}
	return nil
}

// AddClient appends a new client, refreshes lastSync and adds a success
// notification for the client's owner.
func (s *Store) AddClient(ctx context.Context, in ClientInput) (*models.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	client := models.Client{
		ID:          uuid.New().String(),
		FullName:    in.FullName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		DateOfBirth: in.DateOfBirth,
		DateOfDeath: in.DateOfDeath,
		ServiceType: in.ServiceType,
		ServiceDate: in.ServiceDate,
		ServiceTime: in.ServiceTime,
		Status:      in.Status,
		TotalAmount: in.TotalAmount,
		PaidAmount:  in.PaidAmount,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
		OwnerID:     in.OwnerID,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	metrics.StoreOperations.WithLabelValues("realtime", "add_client").Inc()

	s.clients = append(s.clients, client)
	s.lastSync = time.Now()

	s.addNotificationLocked(NotificationInput{
		Title:   "New Client Added",
		Message: fmt.Sprintf("%s has been added to your clients.", client.FullName),
		Type:    models.NotifySuccess,
		OwnerID: client.OwnerID,
	})

	s.logger.Info("client added", "client_id", client.ID, "name", client.FullName)
	out := client
	return &out, nil
}

// ClientUpdate is a partial update of a client. Nil fields are left unchanged.
type ClientUpdate struct {
	FullName    *string              `json:"fullName,omitempty"`
	Email       *string              `json:"email,omitempty"`
	Phone       *string              `json:"phone,omitempty"`
	Address     *string              `json:"address,omitempty"`
	DateOfBirth *string              `json:"dateOfBirth,omitempty"`
	DateOfDeath *string              `json:"dateOfDeath,omitempty"`
	ServiceType *models.ServiceType  `json:"serviceType,omitempty"`
	ServiceDate *string              `json:"serviceDate,omitempty"`
	ServiceTime *string              `json:"serviceTime,omitempty"`
	Status      *models.ClientStatus `json:"status,omitempty"`
	TotalAmount *float64             `json:"totalAmount,omitempty"`
	PaidAmount  *float64             `json:"paidAmount,omitempty"`
	Notes       *string              `json:"notes,omitempty"`
}

func (u ClientUpdate) validate() error {
	if u.ServiceType != nil && !u.ServiceType.Valid() {
		return fmt.Errorf("%w: unknown service type %q", ErrValidation, *u.ServiceType)
	}
	if u.Status != nil && !u.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, *u.Status)
	}
	if u.TotalAmount != nil && *u.TotalAmount < 0 {
		return fmt.Errorf("%w: total amount must not be negative", ErrValidation)
	}
	if u.PaidAmount != nil && *u.PaidAmount < 0 {
		return fmt.Errorf("%w: paid amount must not be negative", ErrValidation)
	}
	return nil
}

// UpdateClient merges the given fields into the client with the matching id
// and refreshes its UpdatedAt. lastSync is refreshed whether or not the id
// exists; an absent id yields ErrNotFound.
func (s *Store) UpdateClient(ctx context.Context, id string, update ClientUpdate) (*models.Client, error) {
	if err := update.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	metrics.StoreOperations.WithLabelValues("realtime", "update_client").Inc()

	s.lastSync = time.Now()

	client := s.findClientLocked(id)
	if client == nil {
		return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
	}

	if update.FullName != nil {
		client.FullName = *update.FullName
	}
	if update.Email != nil {
		client.Email = *update.Email
	}
	if update.Phone != nil {
		client.Phone = *update.Phone
	}
	if update.Address != nil {
		client.Address = *update.Address
	}
	if update.DateOfBirth != nil {
		client.DateOfBirth = *update.DateOfBirth
	}
	if update.DateOfDeath != nil {
		client.DateOfDeath = *update.DateOfDeath
	}
	if update.ServiceType != nil {
		client.ServiceType = *update.ServiceType
	}
	if update.ServiceDate != nil {
		client.ServiceDate = *update.ServiceDate
	}
	if update.ServiceTime != nil {
		client.ServiceTime = *update.ServiceTime
	}
	if update.Status != nil {
		client.Status = *update.Status
	}
	if update.TotalAmount != nil {
		client.TotalAmount = *update.TotalAmount
	}
	if update.PaidAmount != nil {
		client.PaidAmount = *update.PaidAmount
	}
	if update.Notes != nil {
		client.Notes = *update.Notes
	}
	client.UpdatedAt = time.Now().Unix()

	out := *client
	return &out, nil
}

// DeleteClient removes the client with the matching id and cascades removal
// of all payments referencing it, then adds an info notification.
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	metrics.StoreOperations.WithLabelValues("realtime", "delete_client").Inc()

	s.lastSync = time.Now()

	client := s.findClientLocked(id)
	if client == nil {
		return fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	removed := *client

	kept := s.clients[:0]
	for _, c := range s.clients {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.clients = kept

	keptPayments := s.payments[:0]
	for _, p := range s.payments {
		if p.ClientID != id {
			keptPayments = append(keptPayments, p)
		}
	}
	s.payments = keptPayments

	s.addNotificationLocked(NotificationInput{
		Title:   "Client Removed",
		Message: fmt.Sprintf("%s has been removed from your clients.", removed.FullName),
		Type:    models.NotifyInfo,
		OwnerID: removed.OwnerID,
	})

	s.logger.Info("client deleted", "client_id", id, "name", removed.FullName)
	return nil
}

// GetClient returns a copy of the client with the matching id.
func (s *Store) GetClient(id string) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.clients {
		if s.clients[i].ID == id {
			out := s.clients[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
}

// Clients returns a copy of the client collection in insertion order.
func (s *Store) Clients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// PaymentInput is the field set required to record a payment.
// ID and CreatedAt are assigned by the store.
type PaymentInput struct {
	ClientID  string               `json:"clientId"`
	Amount    float64              `json:"amount"`
	Method    models.PaymentMethod `json:"method"`
	Status    models.PaymentStatus `json:"status"`
	Reference string               `json:"reference"`
	OwnerID   string               `json:"userId"`
}

func (in PaymentInput) validate() error {
	if in.ClientID == "" {
		return fmt.Errorf("%w: client id required", ErrValidation)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if !in.Method.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, in.Method)
	}
	if !in.Status.Valid() {
		return fmt.Errorf("%w: unknown payment status %q", ErrValidation, in.Status)
	}
	return nil
}

// AddPayment appends a new payment and refreshes lastSync. If the referenced
// client exists, a success notification naming the client and amount is added.
// A dangling client id is allowed; the payment is recorded without a
// notification.
func (s *Store) AddPayment(ctx context.Context, in PaymentInput) (*models.Payment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	payment := models.Payment{
		ID:        uuid.New().String(),
		ClientID:  in.ClientID,
		Amount:    in.Amount,
		Method:    in.Method,
		Status:    in.Status,
		Reference: in.Reference,
		CreatedAt: time.Now().Unix(),
		OwnerID:   in.OwnerID,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	metrics.StoreOperations.WithLabelValues("realtime", "add_payment").Inc()

	s.payments = append(s.payments, payment)
	s.lastSync = time.Now()

	if client := s.findClientLocked(in.ClientID); client != nil {
		s.addNotificationLocked(NotificationInput{
			Title:   "Payment Received",
			Message: fmt.Sprintf("Payment of R%s received from %s.", formatAmount(payment.Amount), client.FullName),
			Type:    models.NotifySuccess,
			OwnerID: payment.OwnerID,
		})
	}

	s.logger.Info("payment added", "payment_id", payment.ID, "client_id", payment.ClientID, "amount", payment.Amount)
	out := payment
	return &out, nil
}

// PaymentUpdate is a partial update of a payment. Nil fields are left unchanged.
type PaymentUpdate struct {
	Amount    *float64              `json:"amount,omitempty"`
	Method    *models.PaymentMethod `json:"method,omitempty"`
	Status    *models.PaymentStatus `json:"status,omitempty"`
	Reference *string               `json:"reference,omitempty"`
}

func (u PaymentUpdate) validate() error {
	if u.Amount != nil && *u.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if u.Method != nil && !u.Method.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, *u.Method)
	}
	if u.Status != nil && !u.Status.Valid() {
		return fmt.Errorf("%w: unknown payment status %q", ErrValidation, *u.Status)
	}
	return nil
}

// UpdatePayment merges the given fields into the payment with the matching id.
func (s *Store) UpdatePayment(ctx context.Context, id string, update PaymentUpdate) (*models.Payment, error) {
	if err := update.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	metrics.StoreOperations.WithLabelValues("realtime", "update_payment").Inc()

	s.lastSync = time.Now()

	for i := range s.payments {
		if s.payments[i].ID != id {
			continue
		}
		p := &s.payments[i]
		if update.Amount != nil {
			p.Amount = *update.Amount
		}
		if update.Method != nil {
			p.Method = *update.Method
		}
		if update.Status != nil {
			p.Status = *update.Status
		}
		if update.Reference != nil {
			p.Reference = *update.Reference
		}
		out := *p
		return &out, nil
	}
	return nil, fmt.Errorf("payment %s: %w", id, ErrNotFound)
}

// GetClientPayments returns all payments referencing clientID, in
// collection order.
func (s *Store) GetClientPayments(clientID string) []models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Payment
	for _, p := range s.payments {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out
}

// Payments returns a copy of the payment collection in insertion order.
func (s *Store) Payments() []models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Payment, len(s.payments))
	copy(out, s.payments)
	return out
}

// SyncStatus is the coarse sync indicator shown in the dashboard header.
type SyncStatus struct {
	Online   bool      `json:"isOnline"`
	LastSync time.Time `json:"lastSync"`
}

// Status returns the current connectivity flag and last-sync time.
func (s *Store) Status() SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SyncStatus{Online: s.online, LastSync: s.lastSync}
}

// SetOnline records a connectivity edge immediately, without the simulated
// sync round trip. Called by the sync worker on online/offline transitions.
func (s *Store) SetOnline(online bool) {
	s.mu.Lock()
	s.online = online
	s.mu.Unlock()
	metrics.SetOnline(online)
}

// SyncData refreshes the connectivity flag from the probe, waits the
// simulated round trip and refreshes lastSync.
func (s *Store) SyncData(ctx context.Context) error {
	online := s.probe.Online(ctx)
	s.SetOnline(online)

	if err := sleep(ctx, s.syncLatency); err != nil {
		return err
	}

	s.mu.Lock()
	s.lastSync = time.Now()
	s.mu.Unlock()
	metrics.SyncRuns.Inc()
	return nil
}

// Initialize resets the collections to the seeded demo dataset scoped to
// ownerID, plus one welcome notification. Intended to run once per login or
// registration.
func (s *Store) Initialize(ctx context.Context, ownerID string) {
	clients, payments := seedData(ownerID)

	s.mu.Lock()
	defer s.mu.Unlock()
	metrics.StoreOperations.WithLabelValues("realtime", "initialize").Inc()

	s.clients = clients
	s.payments = payments
	s.notifications = nil
	s.addNotificationLocked(NotificationInput{
		Title:   "Welcome to ReposeLink",
		Message: "Your dashboard is ready. Start managing your funeral home operations.",
		Type:    models.NotifyInfo,
		OwnerID: ownerID,
	})

	s.logger.Info("demo dataset initialized", "owner_id", ownerID,
		"clients", len(clients), "payments", len(payments))
}

// findClientLocked returns a pointer into the client slice, or nil.
// Caller must hold s.mu.
func (s *Store) findClientLocked(id string) *models.Client {
	for i := range s.clients {
		if s.clients[i].ID == id {
			return &s.clients[i]
		}
	}
	return nil
}

// formatAmount renders a rand amount without trailing zeros (R1000, R59.90).
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
