package domain

// OpResult reports a business-rule outcome as a value rather than an error,
// so callers can display the message without an exception path. Access
// control failures are never expressed this way; those surface as errors.
type OpResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
