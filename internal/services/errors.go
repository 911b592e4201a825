package services

import "fmt"

// ValidationError is returned for caller mistakes. It is reported back
// verbatim and is never logged as a failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a subscription that does not exist.
type NotFoundError struct {
	SubscriptionID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Subscription '%s' does not exist", e.SubscriptionID)
}
