// Package service holds the business rules of the site backend: admin
// authentication, site content editing and contact message intake. Each
// service receives its repository explicitly; none of them keeps global state.
package service

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Session is the caller's server-side session as seen by one request.
type Session interface {
	// IsAdmin reports whether the session has passed a login check.
	IsAdmin() bool
	// MarkAdmin flags the session as privileged, creating it if needed.
	MarkAdmin() error
	// Destroy removes the session. It is a no-op when none exists.
	Destroy()
}

// Credentials are the configured admin username and bcrypt password hash.
type Credentials struct {
	Username     string
	PasswordHash []byte
}

// NewCredentials builds Credentials from configuration. A ready bcrypt hash
// takes precedence over a plaintext password, which is hashed here so the
// plaintext is not kept in memory by the service. With no password at all
// every login fails.
func NewCredentials(username, password, passwordHash string) (Credentials, error) {
	creds := Credentials{Username: username}
	switch {
	case passwordHash != "":
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return Credentials{}, fmt.Errorf("admin password hash: %w", err)
		}
		creds.PasswordHash = []byte(passwordHash)
	case password != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return Credentials{}, fmt.Errorf("hash admin password: %w", err)
		}
		creds.PasswordHash = hash
	}
	return creds, nil
}

// Configured reports whether a login can ever succeed.
func (c Credentials) Configured() bool {
	return c.Username != "" && len(c.PasswordHash) > 0
}

// AuthService checks admin credentials and session privilege.
type AuthService struct {
	creds Credentials
}

// NewAuthService constructs an AuthService for the given admin credentials.
func NewAuthService(creds Credentials) *AuthService {
	return &AuthService{creds: creds}
}

// Login compares username and password against the admin credentials and
// on a match marks sess as privileged. On a mismatch it returns
// ErrInvalidCredentials and does not touch sess.
func (s *AuthService) Login(sess Session, username, password string) error {
	if !s.creds.Configured() {
		return ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.creds.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.creds.PasswordHash, []byte(password))
	if !userOK || passErr != nil {
		if passErr != nil && !errors.Is(passErr, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("compare password: %w", passErr)
		}
		return ErrInvalidCredentials
	}

	if err := sess.MarkAdmin(); err != nil {
		return fmt.Errorf("mark session: %w", err)
	}
	return nil
}

// RequireAdmin returns nil only when sess is privileged.
func (s *AuthService) RequireAdmin(sess Session) error {
	if sess == nil || !sess.IsAdmin() {
		return ErrUnauthorized
	}
	return nil
}

// Logout destroys sess. It always succeeds.
func (s *AuthService) Logout(sess Session) {
	if sess != nil {
		sess.Destroy()
	}
}
