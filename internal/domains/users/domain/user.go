package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyEmail    = errors.New("email is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 4 characters")
)

// User is a storefront account. Email is the identity key; the admin flag
// gates the back-office surface.
type User struct {
	Email    string
	Name     string
	Password string
	IsAdmin  bool
}

// NewUser builds a user ensuring required invariants.
func NewUser(email, name, password string) (*User, error) {
	user := &User{Name: strings.TrimSpace(name)}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// SetEmail canonicalizes and validates the email.
func (u *User) SetEmail(email string) error {
	email = CanonicalEmail(email)
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetPassword validates basic password strength.
func (u *User) SetPassword(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 4 {
		return ErrWeakPassword
	}
	u.Password = password
	return nil
}

// CheckPassword compares the stored password with the supplied credentials.
func (u *User) CheckPassword(password string) bool {
	return strings.TrimSpace(password) != "" && u.Password == strings.TrimSpace(password)
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetEmail(u.Email); err != nil {
		return err
	}
	return u.SetPassword(u.Password)
}

// CanonicalEmail lowercases and trims an email for case-insensitive identity.
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
