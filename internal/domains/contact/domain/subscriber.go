package domain

import (
	"strings"
	"time"
)

// Subscriber is one newsletter signup.
type Subscriber struct {
	ID           string
	Email        string
	SubscribedAt time.Time
}

// NewSubscriber validates and builds a signup. Emails are canonicalized to
// lower case so repeated signups with different casing dedupe.
func NewSubscriber(email string) (*Subscriber, error) {
	subscriber := &Subscriber{Email: strings.ToLower(strings.TrimSpace(email))}
	if !strings.Contains(subscriber.Email, "@") {
		return nil, ErrInvalidEmail
	}
	return subscriber, nil
}
