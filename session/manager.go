// ABOUTME: Staff session lifecycle: restore, login, signup, and logout
// ABOUTME: Sessions persist in the local store and expire 24 hours after issuance
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/harperreed/phonestore/models"
	"github.com/harperreed/phonestore/outcome"
	"github.com/harperreed/phonestore/store"
	"github.com/harperreed/phonestore/webhook"
)

// Reserved administrator credentials accepted without contacting the
// backend. Setting AdminBypassEnabled to false removes the path.
const (
	AdminBypassEnabled  = true
	AdminBypassEmail    = "flix"
	adminBypassPassword = "Test1111"
)

// User-facing messages.
const (
	MsgMissingCredentials = "Please enter email and password"
	MsgNotConfigured      = "System configuration error. Please contact administrator."
	MsgInvalidCredentials = "Invalid credentials or account not approved yet"
	MsgAuthFailed         = "Authentication failed. Please try again."
	MsgUnreachable        = "Could not reach the shop server. Please try again."
	MsgMissingFields      = "Please fill in all fields"
	MsgPasswordMismatch   = "Passwords do not match"
	MsgPasswordTooWeak    = "Password is too weak. Use at least 8 characters with uppercase, lowercase, and numbers"
	MsgSignupSubmitted    = "Account request submitted! You will receive an email once your account is approved by the administrator."
)

// ErrBusy is returned when a login is already in flight.
var ErrBusy = errors.New("a login is already in progress")

// State is the authentication state.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Sender is the subset of *webhook.Client the manager uses.
type Sender interface {
	Send(ctx context.Context, url string, req webhook.Request) (*webhook.Response, error)
}

// ConfigSource yields the working shop configuration.
type ConfigSource interface {
	Current() models.Configuration
}

type Credentials struct {
	Email    string
	Password string
}

type SignupDetails struct {
	FullName        string
	Email           string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
}

// LoginResult reports how a login attempt ended.
type LoginResult struct {
	User    *models.User
	Message string
	Err     error
}

func (r LoginResult) OK() bool {
	return r.Err == nil && r.User != nil
}

type Options struct {
	Store  store.KeyValueStore
	Client Sender
	Config ConfigSource
	Logger *log.Logger
	Now    func() time.Time
}

// Manager owns the current staff session.
type Manager struct {
	store  store.KeyValueStore
	client Sender
	config ConfigSource
	logger *log.Logger
	now    func() time.Time

	mu       sync.Mutex
	session  *models.Session
	gen      uint64
	inflight bool
}

func NewManager(opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		store:  opts.Store,
		client: opts.Client,
		config: opts.Config,
		logger: logger.WithPrefix("session"),
		now:    now,
	}
}

// Restore loads a persisted session. Expired or unreadable records are deleted.
func (m *Manager) Restore() State {
	var sess models.Session
	found, err := store.GetJSON(m.store, store.KeySession, &sess)

	m.mu.Lock()
	defer m.mu.Unlock()

	if !found && err == nil {
		m.session = nil
		return Anonymous
	}
	if err != nil || !sess.Valid(m.now()) {
		if err != nil {
			m.logger.Warn("discarding unreadable session", "err", err)
		} else {
			m.logger.Info("session expired")
		}
		if derr := m.store.Delete(store.KeySession); derr != nil {
			m.logger.Warn("failed to delete stale session", "err", derr)
		}
		m.session = nil
		return Anonymous
	}

	m.session = &sess
	m.logger.Debug("session restored", "user", sess.User.Email)
	return Authenticated
}

// State reports the current state, expiring the session if its time is up.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activeLocked() == nil {
		return Anonymous
	}
	return Authenticated
}

func (m *Manager) activeLocked() *models.Session {
	if m.session != nil && !m.session.Valid(m.now()) {
		m.logger.Info("session expired")
		m.session = nil
	}
	return m.session
}

// Current returns a copy of the authenticated user.
func (m *Manager) Current() (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.activeLocked()
	if sess == nil {
		return models.User{}, false
	}
	return *sess.User, true
}

// Session returns a copy of the active session, or nil.
func (m *Manager) Session() *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.activeLocked()
	if sess == nil {
		return nil
	}
	cp := *sess
	u := *sess.User
	cp.User = &u
	return &cp
}

// Login authenticates against the backend webhook.
func (m *Manager) Login(ctx context.Context, creds Credentials) LoginResult {
	if AdminBypassEnabled && creds.Email == AdminBypassEmail && creds.Password == adminBypassPassword {
		m.logger.Warn("reserved administrator login used", "email", creds.Email)
		user := &models.User{Email: AdminBypassEmail, FullName: "Flix Administrator", Role: models.RoleAdmin}
		m.mu.Lock()
		m.gen++
		m.mu.Unlock()
		m.establish(user)
		return LoginResult{User: user}
	}

	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return failedLogin(outcome.Validation(MsgMissingCredentials))
	}

	cfg := m.config.Current()
	if !cfg.HasWebhook() {
		return failedLogin(outcome.Configuration(MsgNotConfigured))
	}

	m.mu.Lock()
	if m.inflight {
		m.mu.Unlock()
		return failedLogin(&outcome.Error{Kind: outcome.KindValidation, Message: "Please wait for the current sign-in to finish", Err: ErrBusy})
	}
	m.inflight = true
	gen := m.gen
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inflight = false
		m.mu.Unlock()
	}()

	req := webhook.LoginRequest{User: webhook.LoginUser{
		Email:        normalizeEmail(creds.Email),
		PasswordHash: HashPassword(creds.Password),
	}}
	resp, err := m.client.Send(ctx, cfg.WebhookURL, req)
	if err != nil {
		m.logger.Warn("login failed", "err", err)
		switch outcome.KindOf(err) {
		case outcome.KindRemoteRejection:
			return failedLogin(outcome.Rejected(MsgAuthFailed, err))
		case outcome.KindNetwork:
			return failedLogin(outcome.Network(MsgUnreachable, err))
		}
		return failedLogin(err)
	}

	var user models.User
	found, derr := resp.Decode("user", &user)
	if !resp.Success() || !found || derr != nil {
		msg := resp.Message()
		if msg == "" {
			msg = MsgInvalidCredentials
		}
		return failedLogin(outcome.Rejected(msg, derr))
	}

	m.mu.Lock()
	stale := m.gen != gen || ctx.Err() != nil
	m.mu.Unlock()
	if stale {
		m.logger.Debug("discarding login response that arrived after logout or cancellation")
		return failedLogin(outcome.Network(MsgUnreachable, fmt.Errorf("login superseded: %w", context.Canceled)))
	}

	m.establish(&user)
	m.logger.Info("staff signed in", "email", user.Email, "role", user.Role)
	return LoginResult{User: &user}
}

func failedLogin(err error) LoginResult {
	return LoginResult{Message: outcome.MessageOf(err, MsgAuthFailed), Err: err}
}

func (m *Manager) establish(user *models.User) {
	sess := &models.Session{
		ID:              uuid.NewString(),
		IsAuthenticated: true,
		User:            user,
		IssuedAt:        m.now().UTC(),
	}

	m.mu.Lock()
	m.session = sess
	m.mu.Unlock()

	if err := store.SetJSON(m.store, store.KeySession, sess); err != nil {
		m.logger.Warn("failed to persist session; it will not survive a restart", "err", err)
	}
}

// Signup submits an account request. It never changes the session state.
func (m *Manager) Signup(ctx context.Context, d SignupDetails) outcome.Result {
	if d.FullName == "" || d.Email == "" || d.PhoneNumber == "" || d.Password == "" || d.ConfirmPassword == "" {
		return outcome.Failed(outcome.Validation(MsgMissingFields), "")
	}
	if d.Password != d.ConfirmPassword {
		return outcome.Failed(outcome.Validation(MsgPasswordMismatch), "")
	}
	if !PasswordStrength(d.Password).Acceptable() {
		return outcome.Failed(outcome.Validation(MsgPasswordTooWeak), "")
	}

	cfg := m.config.Current()
	if !cfg.HasWebhook() {
		return outcome.Failed(outcome.Configuration(MsgNotConfigured), "")
	}

	req := webhook.SignupRequest{User: webhook.SignupUser{
		Email:        normalizeEmail(d.Email),
		PasswordHash: HashPassword(d.Password),
		FullName:     d.FullName,
		PhoneNumber:  d.PhoneNumber,
	}}
	if _, err := m.client.Send(ctx, cfg.WebhookURL, req); err != nil {
		m.logger.Warn("signup failed", "err", err)
		if outcome.KindOf(err) == outcome.KindNetwork {
			return outcome.Failed(outcome.Network(MsgUnreachable, err), "")
		}
		return outcome.Failed(outcome.Rejected(MsgAuthFailed, err), "")
	}
	return outcome.Success(MsgSignupSubmitted)
}

// Logout clears the session. It always ends Anonymous.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.session = nil
	m.gen++
	m.mu.Unlock()

	if err := m.store.Delete(store.KeySession); err != nil {
		m.logger.Warn("failed to delete persisted session", "err", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
