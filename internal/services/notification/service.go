// Package notification delivers user-facing messages. Delivery is
// fire-and-forget: a failure here must never fail or roll back the business
// operation that triggered it.
package notification

import "log"

// Notifier is the boundary the engines depend on.
type Notifier interface {
	Notify(email, subject, body string)
}

// Service is a minimal notifier that logs instead of sending email.
type Service struct{}

func NewService() *Service { return &Service{} }

// Notify dispatches the message asynchronously.
func (s *Service) Notify(email, subject, body string) {
	go func() {
		log.Printf("notify %s: %s: %s", email, subject, body)
	}()
}
