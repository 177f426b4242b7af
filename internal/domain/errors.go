package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz record could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a question ID is unknown within the quiz.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrSessionClosed is returned when an event reaches a torn-down session.
	ErrSessionClosed = errors.New("session closed")
	// ErrSessionNotActive is returned when an answer arrives before countdown
	// has finished or after the session completed.
	ErrSessionNotActive = errors.New("session not active")
	// ErrInvalidCredentials is returned on a failed admin sign-in.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrOperatorNotFound indicates the admin account does not exist.
	ErrOperatorNotFound = errors.New("operator not found")
)
