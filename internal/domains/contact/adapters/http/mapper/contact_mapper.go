package mapper

import (
	"time"

	contactdomain "github.com/Apurer/storefront-api/internal/domains/contact/domain"
)

// Contact is the transport representation of a submission.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainContact converts a domain submission.
func FromDomainContact(contact *contactdomain.Contact) Contact {
	if contact == nil {
		return Contact{}
	}
	return Contact{
		ID:        contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Subject:   contact.Subject,
		Message:   contact.Message,
		Status:    string(contact.Status),
		CreatedAt: contact.CreatedAt,
	}
}

// FromDomainContactList converts a slice of domain submissions.
func FromDomainContactList(contacts []*contactdomain.Contact) []Contact {
	result := make([]Contact, 0, len(contacts))
	for _, contact := range contacts {
		result = append(result, FromDomainContact(contact))
	}
	return result
}

// Subscriber is the transport representation of a newsletter signup.
type Subscriber struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// FromDomainSubscriberList converts a slice of domain signups.
func FromDomainSubscriberList(subscribers []*contactdomain.Subscriber) []Subscriber {
	result := make([]Subscriber, 0, len(subscribers))
	for _, subscriber := range subscribers {
		if subscriber == nil {
			continue
		}
		result = append(result, Subscriber{
			ID:           subscriber.ID,
			Email:        subscriber.Email,
			SubscribedAt: subscriber.SubscribedAt,
		})
	}
	return result
}
