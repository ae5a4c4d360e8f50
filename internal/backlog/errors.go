package backlog

import "fmt"

// ConfigurationError reports invalid simulation inputs. It always fails a
// run before the first simulated day executes; a run never partially
// commits.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration error: " + e.Message
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
}

// NewConfigurationError builds a ConfigurationError for a named field.
func NewConfigurationError(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IllegalTransitionError reports a violated engine invariant, such as
// mutating an item that already left pending or a broken conservation
// count. It indicates an engine bug and is never expected in correct
// operation.
type IllegalTransitionError struct {
	ItemID  string
	From    Status
	To      Status
	Message string
}

func (e *IllegalTransitionError) Error() string {
	if e.Message != "" {
		return "illegal transition: " + e.Message
	}
	return fmt.Sprintf("illegal transition: item %s cannot move %s -> %s", e.ItemID, e.From, e.To)
}
