package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/blossom-storefront/internal/domain/session"
)

// Compile-time check that Client provides the session holder's auth calls.
var _ session.API = (*Client)(nil)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type resendOTPRequest struct {
	Email string `json:"email"`
}

// Login authenticates and returns the session payload issued by the server.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	var s session.Session
	err := c.doJSON(ctx, http.MethodPost, "/api/users/login", loginRequest{
		Email:    email,
		Password: password,
	}, &s, callOpts{})
	if err != nil {
		return nil, err
	}
	if s.Token == "" {
		return nil, errors.New("login response missing token")
	}
	return &s, nil
}

// Register creates an account. The server requires OTP verification before
// issuing a token, so no session payload is returned.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/users", registerRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, nil, callOpts{})
}

// VerifyOTP submits a one-time code and returns the session payload on
// success.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*session.Session, error) {
	var s session.Session
	err := c.doJSON(ctx, http.MethodPost, "/api/users/verify", verifyOTPRequest{
		Email: email,
		OTP:   otp,
	}, &s, callOpts{})
	if err != nil {
		return nil, err
	}
	if s.Token == "" {
		return nil, errors.New("verify response missing token")
	}
	return &s, nil
}

// ResendOTP asks the server to send a fresh one-time code.
func (c *Client) ResendOTP(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/users/resend-otp", resendOTPRequest{
		Email: email,
	}, nil, callOpts{})
}

// User is an account as listed by the admin back-office.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// ListUsers returns all accounts. Requires an admin session.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.doJSON(ctx, http.MethodGet, "/api/users", nil, &users, callOpts{authed: true}); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes an account. Requires an admin session.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/users/"+id, nil, nil, callOpts{authed: true})
}

// ProfileUpdate carries the fields a user may change on their own account.
// Password is sent only when non-empty.
type ProfileUpdate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// UpdateProfile updates the authenticated user's profile and returns the
// refreshed session payload.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*session.Session, error) {
	var s session.Session
	err := c.doJSON(ctx, http.MethodPut, "/api/users/profile", update, &s, callOpts{authed: true})
	if err != nil {
		return nil, err
	}
	if s.Token == "" {
		return nil, errors.New("profile response missing token")
	}
	return &s, nil
}
