package models

// Error taxonomy shared by services and mapped to HTTP statuses in the
// response helper. Every failure carries a human-readable reason string.

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string { return e.Message }

type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string { return e.Message }

type ErrorInvalidOperation struct {
	Message string
}

func (e ErrorInvalidOperation) Error() string { return e.Message }

// ErrorUpstream marks a failure of a secondary collaborator (search mirror,
// notifier, mailer) after the primary write already committed. The outbox
// worker uses it to decide on a retry; it never aborts the original request.
type ErrorUpstream struct {
	Message string
}

func (e ErrorUpstream) Error() string { return e.Message }

func NotFound(msg string) error         { return ErrorNotFound{Message: msg} }
func Forbidden(msg string) error        { return ErrorForbidden{Message: msg} }
func Conflict(msg string) error         { return ErrorConflict{Message: msg} }
func InvalidOperation(msg string) error { return ErrorInvalidOperation{Message: msg} }
func Upstream(msg string) error         { return ErrorUpstream{Message: msg} }
