package domain

import (
	"fmt"
	"strings"
)

// ValidateIdentity applies the loose email check used by the identity gate:
// a non-empty string containing both "@" and ".".
// Returns the trimmed identity or an ErrValidation.
func ValidateIdentity(identity string) (string, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" || !strings.Contains(identity, "@") || !strings.Contains(identity, ".") {
		return "", fmt.Errorf("%w: please enter a valid email address", ErrValidation)
	}
	return identity, nil
}
