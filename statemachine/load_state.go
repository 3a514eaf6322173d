package statemachine

import (
	"errors"

	"github.com/sirajbinsyed/menuzy/models"
)

// Transition defines a valid batch state change and what triggers it
type Transition struct {
	From    models.BatchState
	To      models.BatchState
	Trigger string
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Validation always runs first and always completes
	{From: models.BatchReceived, To: models.BatchValidated, Trigger: "validation finished"},
	// A batch with any violation is rejected before touching the store
	{From: models.BatchValidated, To: models.BatchRejected, Trigger: "violations found"},
	// A clean batch enters its transaction
	{From: models.BatchValidated, To: models.BatchPersisting, Trigger: "validation passed"},
	// The transaction either commits whole or rolls back whole
	{From: models.BatchPersisting, To: models.BatchCommitted, Trigger: "transaction committed"},
	{From: models.BatchPersisting, To: models.BatchRolledBack, Trigger: "store error or timeout"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From models.BatchState
	To   models.BatchState
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(state models.BatchState) []models.BatchState {
	var nexts []models.BatchState
	seen := map[models.BatchState]bool{}
	for _, t := range validTransitions {
		if t.From == state && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// IsTerminal reports whether a batch in this state can never move again
func IsTerminal(state models.BatchState) bool {
	return len(ValidTransitionsFrom(state)) == 0
}

// CanTransition checks if a batch may move from one state to another
func CanTransition(from, to models.BatchState) error {
	if transitionMap[transitionKey{From: from, To: to}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			". Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(state models.BatchState) string {
	nexts := ValidTransitionsFrom(state)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
