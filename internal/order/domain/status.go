package domain

import "fmt"

// Status is the lifecycle state of an order.
//
//	PENDING -> CONFIRMED -> PROCESSING -> SHIPPED -> DELIVERED
//	PENDING / CONFIRMED -> CANCELLED
//
// DELIVERED and CANCELLED are terminal.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// InvalidTransitionError reports an illegal status transition attempt,
// naming the current and attempted states
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order transition from %s to %s", e.From, e.To)
}

// IsTerminal reports whether no further transition is legal from s
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// cancellable statuses; everything later in the lifecycle is committed
// to fulfillment
func (s Status) cancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}
