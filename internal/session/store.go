// Package session holds the single authenticated identity and mediates login
// and registration against a seeded, in-memory credential list.
//
// There is no real backend in this version of the product: credentials are
// compared in plaintext against the seeded list, and the store's observable
// state (current user, authenticated flag) is snapshotted to local storage so
// it survives restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reposelink/reposelink/internal/metrics"
	"github.com/reposelink/reposelink/internal/models"
	"github.com/reposelink/reposelink/internal/storage"
)

var (
	// ErrInvalidCredentials is the umbrella error for failed logins.
	// ErrUnknownEmail and ErrWrongPassword both match it via errors.Is.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnknownEmail means no credential record exists for the email.
	ErrUnknownEmail = fmt.Errorf("%w: unknown email", ErrInvalidCredentials)

	// ErrWrongPassword means the email exists but the password does not match.
	ErrWrongPassword = fmt.Errorf("%w: wrong password", ErrInvalidCredentials)

	// ErrEmailExists means a registration email is already taken.
	ErrEmailExists = errors.New("email already registered")

	// ErrNotAuthenticated means an operation requires a current user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrValidation means the input failed basic field validation.
	ErrValidation = errors.New("invalid input")
)

// snapshotKey is the fixed storage namespace the session state persists under.
const snapshotKey = "auth-storage"

// credential pairs a user record with its plaintext password.
// Passwords never leave this package.
type credential struct {
	user     models.User
	password string
}

// Config configures a session Store.
type Config struct {
	// KV is the durable storage snapshots are written to. Optional; without
	// it the session state lives only for the process lifetime.
	KV storage.KV

	// LoginLatency and RegisterLatency are the simulated round-trip delays.
	// Zero means no delay (used by tests).
	LoginLatency    time.Duration
	RegisterLatency time.Duration

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Store mediates authentication against the seeded credential list and holds
// at most one current user.
type Store struct {
	mu            sync.Mutex
	creds         []credential
	current       *models.User
	authenticated bool

	kv              storage.KV
	loginLatency    time.Duration
	registerLatency time.Duration
	logger          *slog.Logger
}

// New creates a session store seeded with the demo credential list and, if a
// snapshot exists in cfg.KV, rehydrates the current user from it.
func New(ctx context.Context, cfg Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		creds:           seedCredentials(),
		kv:              cfg.KV,
		loginLatency:    cfg.LoginLatency,
		registerLatency: cfg.RegisterLatency,
		logger:          logger,
	}

	if err := s.restore(ctx); err != nil {
		return nil, fmt.Errorf("failed to restore session snapshot: %w", err)
	}
	return s, nil
}

// RegisterInput is the field set required to create an account.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company"`
	Phone     string `json:"phone"`
}

func (in RegisterInput) validate() error {
	if !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: malformed email", ErrValidation)
	}
	if len(in.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	if in.FirstName == "" || in.LastName == "" {
		return fmt.Errorf("%w: first and last name required", ErrValidation)
	}
	return nil
}

// Login authenticates against the credential list.
//
// On success the matched record becomes the current user (password stripped,
// LastLogin refreshed) and the session snapshot is persisted. On failure the
// current user is left unchanged and the error distinguishes an unknown email
// from a wrong password; both match ErrInvalidCredentials.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}

	// Simulated network round trip.
	if err := sleep(ctx, s.loginLatency); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	metrics.StoreOperations.WithLabelValues("session", "login").Inc()

	cred := s.findCredential(email)
	if cred == nil {
		s.logger.Warn("login failed", "email", email, "reason", "unknown email")
		return nil, ErrUnknownEmail
	}
	if cred.password != password {
		s.logger.Warn("login failed", "email", email, "reason", "wrong password")
		return nil, ErrWrongPassword
	}

	user := cred.user
	user.LastLogin = time.Now().Unix()
	cred.user.LastLogin = user.LastLogin

	s.current = &user
	s.authenticated = true
	s.persist(ctx)

	s.logger.Info("user logged in", "user_id", user.ID, "email", user.Email)
	out := user
	return &out, nil
}

// Register creates a new account on the free plan and makes it the current
// user. Returns ErrEmailExists if the email is already taken.
func (s *Store) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	// Simulated network round trip.
	if err := sleep(ctx, s.registerLatency); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	metrics.StoreOperations.WithLabelValues("session", "register").Inc()

	if s.findCredential(in.Email) != nil {
		s.logger.Warn("registration failed", "email", in.Email, "reason", "email exists")
		return nil, ErrEmailExists
	}

	now := time.Now().Unix()
	user := models.User{
		ID:        uuid.New().String(),
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Company:   in.Company,
		Phone:     in.Phone,
		Plan:      models.PlanFree,
		CreatedAt: now,
		LastLogin: now,
	}

	s.creds = append(s.creds, credential{user: user, password: in.Password})
	s.current = &user
	s.authenticated = true
	s.persist(ctx)

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	out := user
	return &out, nil
}

// Logout clears the current user and authenticated flag.
// The credential list entry is untouched.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	metrics.StoreOperations.WithLabelValues("session", "logout").Inc()

	s.current = nil
	s.authenticated = false
	s.persist(ctx)
}

// UserUpdate is a partial update of the current user's profile.
// Nil fields are left unchanged.
type UserUpdate struct {
	FirstName *string      `json:"firstName,omitempty"`
	LastName  *string      `json:"lastName,omitempty"`
	Company   *string      `json:"company,omitempty"`
	Phone     *string      `json:"phone,omitempty"`
	Avatar    *string      `json:"avatar,omitempty"`
	Plan      *models.Plan `json:"plan,omitempty"`
}

// UpdateUser merges the given fields into the current user.
// Returns ErrNotAuthenticated if no user is logged in.
func (s *Store) UpdateUser(ctx context.Context, update UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	metrics.StoreOperations.WithLabelValues("session", "update_user").Inc()

	if s.current == nil {
		return nil, ErrNotAuthenticated
	}
	if update.Plan != nil && !update.Plan.Valid() {
		return nil, fmt.Errorf("%w: unknown plan %q", ErrValidation, *update.Plan)
	}

	if update.FirstName != nil {
		s.current.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		s.current.LastName = *update.LastName
	}
	if update.Company != nil {
		s.current.Company = *update.Company
	}
	if update.Phone != nil {
		s.current.Phone = *update.Phone
	}
	if update.Avatar != nil {
		s.current.Avatar = *update.Avatar
	}
	if update.Plan != nil {
		s.current.Plan = *update.Plan
	}
	s.persist(ctx)

	out := *s.current
	return &out, nil
}

// CheckAuth reports whether a current user is set.
func (s *Store) CheckAuth() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// CurrentUser returns a copy of the current user, or nil if none is set.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	out := *s.current
	return &out
}

// findCredential returns the credential record for email, or nil.
// Caller must hold s.mu.
func (s *Store) findCredential(email string) *credential {
	for i := range s.creds {
		if s.creds[i].user.Email == email {
			return &s.creds[i]
		}
	}
	return nil
}

// snapshot is the serialized form of the store's observable state.
type snapshot struct {
	User          *models.User `json:"user"`
	Authenticated bool         `json:"authenticated"`
}

// persist writes the session snapshot to durable storage. Persistence is
// best-effort: the in-memory state is already mutated, so failures are logged
// rather than surfaced. Caller must hold s.mu.
func (s *Store) persist(ctx context.Context) {
	if s.kv == nil {
		return
	}
	data, err := json.Marshal(snapshot{User: s.current, Authenticated: s.authenticated})
	if err != nil {
		s.logger.Error("failed to encode session snapshot", "error", err)
		return
	}
	if err := s.kv.Put(ctx, snapshotKey, data); err != nil {
		s.logger.Warn("failed to persist session snapshot", "error", err)
	}
}

// restore rehydrates the current user from a previous snapshot, if present.
func (s *Store) restore(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	data, err := s.kv.Get(ctx, snapshotKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// A corrupt snapshot is not fatal; start unauthenticated.
		s.logger.Warn("discarding unreadable session snapshot", "error", err)
		return nil
	}

	s.current = snap.User
	s.authenticated = snap.Authenticated && snap.User != nil
	if s.current != nil {
		s.logger.Info("session restored", "user_id", s.current.ID, "email", s.current.Email)
	}
	return nil
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
