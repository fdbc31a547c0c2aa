// Package domain models contact-form submissions and their triage states.
package domain

import (
	"errors"
	"strings"
	"time"
)

// Status tracks admin triage of a submission.
type Status string

const (
	StatusUnread  Status = "unread"
	StatusRead    Status = "read"
	StatusReplied Status = "replied"
)

var (
	ErrEmptyName    = errors.New("name is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
	ErrEmptyMessage = errors.New("message is required")
	ErrInvalidState = errors.New("unknown contact status")
)

// Contact is one submission from the storefront contact form.
type Contact struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	Status    Status
	CreatedAt time.Time
}

// NewContact validates and builds a submission in the unread state.
func NewContact(name, email, subject, message string) (*Contact, error) {
	contact := &Contact{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Subject: strings.TrimSpace(subject),
		Message: strings.TrimSpace(message),
		Status:  StatusUnread,
	}
	if contact.Name == "" {
		return nil, ErrEmptyName
	}
	if !strings.Contains(contact.Email, "@") {
		return nil, ErrInvalidEmail
	}
	if contact.Message == "" {
		return nil, ErrEmptyMessage
	}
	return contact, nil
}

// SetStatus moves the submission into a triage state.
func (c *Contact) SetStatus(next Status) error {
	switch next {
	case StatusUnread, StatusRead, StatusReplied:
		c.Status = next
		return nil
	default:
		return ErrInvalidState
	}
}
