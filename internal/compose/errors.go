package compose

import (
	"errors"
	"fmt"

	"github.com/a3tai/mcp-field-reports/internal/notify"
)

var (
	// ErrNoLineItems is the validation failure: the record has no populated
	// line item (and, where the template allows one, no fallback narrative).
	ErrNoLineItems = errors.New("compose: no populated line item")

	// ErrUnknownTemplate is returned for records no template can compose.
	ErrUnknownTemplate = errors.New("compose: unknown template")

	// ErrVerify is returned when a rendered document does not read back.
	ErrVerify = errors.New("compose: rendered document failed verification")
)

// ValidationError reports a record that cannot be composed. Title and
// Message are the text shown to the user.
type ValidationError struct {
	Template  Template
	Condition string
	Title     string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("compose: %s: requires %s", e.Template, e.Condition)
}

func (e *ValidationError) Unwrap() error { return ErrNoLineItems }

// Notification returns the failure notification for e.
func (e *ValidationError) Notification() notify.Notification {
	return notify.Notification{Severity: notify.Failure, Title: e.Title, Message: e.Message}
}
