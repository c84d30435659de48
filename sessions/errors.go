package sessions

// The session core reports failures through a small set of typed
// errors so the protocol and HTTP boundaries can map them to wire
// codes with errors.As.

type ValidationError struct{ Reason string }

func (e *ValidationError) Error() string { return e.Reason }

type AuthorizationError struct{ Reason string }

func (e *AuthorizationError) Error() string { return e.Reason }

type NotFoundError struct{ Reason string }

func (e *NotFoundError) Error() string { return e.Reason }

type ConflictError struct{ Reason string }

func (e *ConflictError) Error() string { return e.Reason }

type GeofenceError struct{ Reason string }

func (e *GeofenceError) Error() string { return e.Reason }
