package tagging

import (
	"errors"
	"fmt"
)

// NotFoundError reports a referenced resource that does not exist, such as
// applying an association for a tag id with no tag row behind it.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ConfigurationError reports a lookup on a target type no resolver was
// registered for. Unknown types are a wiring mistake, not an empty result,
// so they never degrade to "not found".
type ConfigurationError struct {
	TargetType string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unregistered target type: %s", e.TargetType)
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConfiguration reports whether err is a ConfigurationError
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
