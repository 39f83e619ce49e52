package domain

import (
	"github.com/google/uuid"
	"time"
)

type CheckoutStatus int

const (
	CheckoutIdle CheckoutStatus = iota
	CheckoutProcessing
	CheckoutSucceeded
	CheckoutFailed
)

func (s CheckoutStatus) String() string {
	switch s {
	case CheckoutIdle:
		return "idle"
	case CheckoutProcessing:
		return "processing"
	case CheckoutSucceeded:
		return "succeeded"
	case CheckoutFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CheckoutOutcome is the observable state of a checkout.
// Message is set only when Failed, Order only when Succeeded.
type CheckoutOutcome struct {
	Status  CheckoutStatus
	Message string
	Order   *Order
}

type Order struct {
	ID          uuid.UUID
	Entries     []CartEntry
	Total       Money
	SubmittedAt time.Time
}
