package services

// Typed service errors. Handlers map each variant to a deterministic
// status code; anything untyped is treated as an unexpected failure.

// ValidationError means the caller's input was unusable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError means the transcript source rejected or failed the fetch.
// Message carries the specific reason reported to the caller.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// NotFoundError means a referenced resource does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}
