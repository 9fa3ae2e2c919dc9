package services

import "errors"

// Errors the conversation engine reports back to callers. All of them
// are recovered locally (the user gets a reply and the transition is
// abandoned); none are fatal to the service.
var (
	// ErrDuplicateEntry - create flow started while today already has an entry.
	ErrDuplicateEntry = errors.New("mood already recorded today")

	// ErrNoEntryToUpdate - update flow started with nothing to update.
	ErrNoEntryToUpdate = errors.New("no mood entry recorded today")

	// ErrInvalidSelection - mood token outside the closed mood set.
	ErrInvalidSelection = errors.New("invalid mood selection")

	// ErrNoActiveSession - event arrived for a user with no open flow.
	ErrNoActiveSession = errors.New("no active conversation session")

	// ErrPersistence wraps store failures surfaced during a commit.
	ErrPersistence = errors.New("persistence failure")
)
