package services

import "errors"

var (
	// ErrRoomNotFound is returned when a room code or id resolves to nothing.
	ErrRoomNotFound = errors.New("room not found")
	// ErrQuestionNotFound is returned when a submitted question id is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrSessionNotFound is returned when answers reference a missing session.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrUserNotFound is returned when the caller identity resolves to nothing.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotRoomOwner is returned when someone other than the owner tries to
	// control a room.
	ErrNotRoomOwner = errors.New("only the room owner may do that")
	// ErrNotSessionOwner is returned when a caller touches someone else's session.
	ErrNotSessionOwner = errors.New("session belongs to another player")

	// ErrAlreadyAnswered is returned on a second answer for the same question
	// in the same session.
	ErrAlreadyAnswered = errors.New("answer already submitted for this question")
	// ErrStaleQuestionIndex is returned when a concurrent advance moved the
	// question index underneath the caller.
	ErrStaleQuestionIndex = errors.New("question index changed, re-read the room")

	// ErrRoomCodeExhausted is returned when code generation keeps colliding.
	ErrRoomCodeExhausted = errors.New("could not allocate room code")

	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on a bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
