// Package session owns the client's authentication state: the bearer token
// and the cached user profile, mirrored to durable storage so a login
// survives process restarts.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// StorageKey is the persisted-store key holding the serialized session.
const StorageKey = "userInfo"

// Profile holds the identity fields returned by the server at login or OTP
// verification time.
type Profile struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}

// Session is the client-held proof of authentication: an opaque bearer token
// plus the cached profile. The profile is present iff the token is.
type Session struct {
	Profile

	Token string `json:"token"`
}

// Storage is the subset of the persisted store the holder needs.
type Storage interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// API is the set of authentication calls the holder performs. Login and
// VerifyOTP return the full session payload issued by the server.
type API interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Register(ctx context.Context, name, email, password string) error
	VerifyOTP(ctx context.Context, email, otp string) (*Session, error)
	ResendOTP(ctx context.Context, email string) error
}

// Holder owns the current session. Network failures are returned to the
// caller without mutating state; storage failures are logged and otherwise
// ignored (the in-memory session remains authoritative for the process).
type Holder struct {
	store Storage
	api   API
	lg    *zap.Logger

	mu      sync.Mutex
	current *Session
}

// NewHolder creates a Holder, restoring a previously saved session if one
// exists. The restored token is trusted without server re-validation; expiry
// is handled reactively when an API call rejects it. A corrupt stored value
// degrades silently to logged-out.
func NewHolder(store Storage, api API, lg *zap.Logger) *Holder {
	h := &Holder{store: store, api: api, lg: lg}

	raw, ok, err := store.Get(StorageKey)
	if err != nil {
		lg.Warn("Loading saved session failed, starting logged out", zap.Error(err))
		return h
	}
	if !ok {
		return h
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil || s.Token == "" {
		lg.Warn("Saved session is unreadable, starting logged out", zap.Error(err))
		return h
	}
	h.current = &s
	return h
}

// Login authenticates with the server and, on success, stores the session in
// memory and durable storage. On failure no state changes.
func (h *Holder) Login(ctx context.Context, email, password string) error {
	s, err := h.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	h.set(s)
	return nil
}

// Register creates an account. It does not establish a session: the server
// requires OTP verification before issuing a token.
func (h *Holder) Register(ctx context.Context, name, email, password string) error {
	return h.api.Register(ctx, name, email, password)
}

// VerifyOTP submits the one-time code. On success it behaves like Login.
func (h *Holder) VerifyOTP(ctx context.Context, email, otp string) error {
	s, err := h.api.VerifyOTP(ctx, email, otp)
	if err != nil {
		return err
	}
	h.set(s)
	return nil
}

// ResendOTP asks the server to send a fresh one-time code. No session side
// effect either way.
func (h *Holder) ResendOTP(ctx context.Context, email string) error {
	return h.api.ResendOTP(ctx, email)
}

// Logout drops the in-memory session and removes it from storage. It cannot
// fail from the caller's perspective.
func (h *Holder) Logout() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = nil
	if err := h.store.Delete(StorageKey); err != nil {
		h.lg.Warn("Removing saved session failed", zap.Error(err))
	}
}

// Update replaces the current session, e.g. after a profile update returns a
// refreshed payload.
func (h *Holder) Update(s *Session) {
	h.set(s)
}

// Current returns a copy of the active session, or nil when logged out.
func (h *Holder) Current() *Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil {
		return nil
	}
	s := *h.current
	return &s
}

// Token returns the bearer token, or an empty string when logged out.
func (h *Holder) Token() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil {
		return ""
	}
	return h.current.Token
}

// IsAdmin reports whether an admin user is logged in.
func (h *Holder) IsAdmin() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.current != nil && h.current.IsAdmin
}

func (h *Holder) set(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = s

	raw, err := json.Marshal(s)
	if err != nil {
		h.lg.Warn("Serializing session failed", zap.Error(err))
		return
	}
	if err := h.store.Set(StorageKey, raw); err != nil {
		h.lg.Warn("Saving session failed", zap.Error(err))
	}
}
