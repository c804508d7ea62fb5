package rmas

import "fmt"

// allowedTransitions defines the valid status transitions. Cancellation is
// reachable from every status, including completed: cancelling a completed
// RMA represents an after-the-fact reversal. Nothing leaves cancelled.
var allowedTransitions = map[Status][]Status{
	StatusDraft:     {StatusApproved, StatusCompleted, StatusCancelled},
	StatusApproved:  {StatusCompleted, StatusCancelled},
	StatusCompleted: {StatusCancelled},
	StatusCancelled: {},
}

// CanTransition checks if a transition from one status to another is allowed.
func CanTransition(from, to Status) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an error if the transition is not allowed.
func ValidateTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("invalid rma status transition %s -> %s", from, to)
	}
	return nil
}
