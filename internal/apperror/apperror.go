// Package apperror defines the typed errors surfaced in the dashboard's
// error overlay.
package apperror

import "fmt"

// Kind classifies an application error.
type Kind int

const (
	// KindDockerConnect means the Docker daemon could not be reached.
	KindDockerConnect Kind = iota
	// KindDockerCommand means a container lifecycle command failed.
	KindDockerCommand
	// KindMouseCapture means toggling terminal mouse capture failed.
	KindMouseCapture
	// KindExec means the interactive exec session returned an error.
	KindExec
	// KindTerminal means a terminal setup or draw operation failed.
	KindTerminal
)

// AppError is a user-visible application error. Everything except
// KindTerminal is recoverable: it is shown in the error overlay until
// cleared, while the dashboard keeps running.
type AppError struct {
	Err  error
	Msg  string
	Kind Kind
}

func (e *AppError) Error() string {
	switch e.Kind {
	case KindDockerConnect:
		return "unable to access the Docker daemon"
	case KindDockerCommand:
		if e.Err != nil {
			return fmt.Sprintf("docker command failed: %s", e.Err)
		}
		return "docker command failed"
	case KindMouseCapture:
		return fmt.Sprintf("unable to toggle mouse capture: %s", e.Msg)
	case KindExec:
		if e.Err != nil {
			return fmt.Sprintf("exec session failed: %s", e.Err)
		}
		return "exec session failed"
	case KindTerminal:
		return "unable to draw to the terminal"
	}
	return "unknown error"
}

func (e *AppError) Unwrap() error { return e.Err }

// Fatal reports whether the error should end the process.
func (e *AppError) Fatal() bool { return e.Kind == KindTerminal }

// New builds an AppError of the given kind wrapping err.
func New(kind Kind, err error) *AppError {
	return &AppError{Kind: kind, Err: err}
}

// NewMsg builds an AppError of the given kind with a detail message.
func NewMsg(kind Kind, msg string) *AppError {
	return &AppError{Kind: kind, Msg: msg}
}
