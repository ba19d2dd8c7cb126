package schema

import "errors"

var (
	// ErrInvalidRequest indicates a malformed request payload.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidUser indicates an invalid username.
	ErrInvalidUser = errors.New("invalid username")
	// ErrInvalidSession indicates an invalid session identifier.
	ErrInvalidSession = errors.New("invalid session")
	// ErrInvalidLanguage indicates an invalid language identifier.
	ErrInvalidLanguage = errors.New("invalid language")
	// ErrSessionNotFound indicates a requested session could not be found.
	ErrSessionNotFound = errors.New("session not found")
	// ErrUserNotFound indicates the user is not a member of the session.
	ErrUserNotFound = errors.New("user not in session")
	// ErrUsernameTaken indicates the username is already in use in the session.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEventNotFound indicates a requested event could not be found.
	ErrEventNotFound = errors.New("event not found")
	// ErrEventExists indicates an event with the same id already exists.
	ErrEventExists = errors.New("event already exists")
	// ErrNotEventCreator indicates the caller did not create the event.
	ErrNotEventCreator = errors.New("only the event creator can modify it")
	// ErrEmptyTitle indicates an event title was empty after trimming.
	ErrEmptyTitle = errors.New("event title is required")
	// ErrMissingDate indicates an event date was not supplied.
	ErrMissingDate = errors.New("event date is required")
	// ErrInvalidTime indicates an event time was not a valid HH:MM value.
	ErrInvalidTime = errors.New("event time must be HH:MM")
	// ErrCodeTooLarge indicates the submitted code exceeds the size limit.
	ErrCodeTooLarge = errors.New("code exceeds size limit")
	// ErrSessionBusy indicates the session already has a run in flight.
	ErrSessionBusy = errors.New("session is busy")
	// ErrDispatcherUnavailable indicates no dispatcher is configured.
	ErrDispatcherUnavailable = errors.New("dispatcher not configured")
)
