package events

import (
	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
)

// Topics are published only after the underlying write has committed.
const (
	TopicJobCreated               = "job:created"
	TopicApplicationSubmitted     = "application:submitted"
	TopicApplicationStatusChanged = "application:status_changed"
)

// Publisher is the part of EventBus.Bus the domain needs.
type Publisher interface {
	Publish(topic string, args ...interface{})
}

type JobCreated struct {
	JobID    uuid.UUID
	PostedBy uuid.UUID
	Title    string
}

type ApplicationSubmitted struct {
	ApplicationID uuid.UUID
	JobID         uuid.UUID
	ApplicantID   uuid.UUID
	RecruiterID   uuid.UUID
}

type ApplicationStatusChanged struct {
	ApplicationID uuid.UUID
	JobID         uuid.UUID
	ApplicantID   uuid.UUID
	Status        string
}

func NewBus() EventBus.Bus {
	return EventBus.New()
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, ...interface{}) {}

// Nop discards every event.
func Nop() Publisher { return nopPublisher{} }
