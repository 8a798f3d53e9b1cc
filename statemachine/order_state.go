package statemachine

import (
	"strings"

	"bookstore-api/errs"
	"bookstore-api/models"
)

// Transition defines a valid state change
type Transition struct {
	From models.OrderStatus
	To   models.OrderStatus
}

// validTransitions is the authoritative state machine definition:
// PENDING → CONFIRMED → {SHIPPED | PICKED_UP} → DELIVERED, with CANCELLED
// reachable from any non-terminal state.
var validTransitions = []Transition{
	{From: models.StatusPending, To: models.StatusConfirmed},
	{From: models.StatusPending, To: models.StatusCancelled},
	{From: models.StatusConfirmed, To: models.StatusShipped},
	{From: models.StatusConfirmed, To: models.StatusPickedUp},
	{From: models.StatusConfirmed, To: models.StatusCancelled},
	{From: models.StatusShipped, To: models.StatusDelivered},
	{From: models.StatusShipped, To: models.StatusCancelled},
	{From: models.StatusPickedUp, To: models.StatusDelivered},
	{From: models.StatusPickedUp, To: models.StatusCancelled},
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// ParseStatus normalizes a status string and rejects unknown values.
func ParseStatus(s string) (models.OrderStatus, error) {
	status := models.OrderStatus(strings.ToUpper(s))
	switch status {
	case models.StatusPending, models.StatusConfirmed, models.StatusShipped,
		models.StatusPickedUp, models.StatusDelivered, models.StatusCancelled:
		return status, nil
	}
	return "", errs.Validation("unknown order status: " + s)
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks whether an order may move from one state to another
func CanTransition(from, to models.OrderStatus) error {
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return errs.Validation(
		"invalid transition: " + string(from) + " to " + string(to) +
			". Valid transitions from " + string(from) + " are: " + describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	parts := make([]string, len(nexts))
	for i, s := range nexts {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
