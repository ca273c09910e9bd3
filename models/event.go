package models

import "time"

// Domain event names.
const (
	EventAttentionCreated = "ettAttentionCreated"
	EventAttentionUpdated = "ettAttentionUpdated"
	EventBookingCreated   = "ettBookingCreated"
	EventBookingUpdated   = "ettBookingUpdated"
	EventQueueUpdated     = "ettQueueUpdated"
	EventClientCreated    = "ettClientCreated"
	EventClientUpdated    = "ettClientUpdated"
	EventUserCreated      = "ettUserCreated"
	EventPackageCreated   = "ettPackageCreated"
	EventPackageUpdated   = "ettPackageUpdated"
	EventIncomeCreated    = "ettIncomeCreated"
	EventIncomeUpdated    = "ettIncomeUpdated"
)

// Event is a domain change published after a successful write.
type Event struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	OccurredOn time.Time   `json:"occurredOn"`
	Metadata   EventMeta   `json:"metadata"`
	Data       interface{} `json:"data"`
}

type EventMeta struct {
	User string `json:"user,omitempty"`
}
