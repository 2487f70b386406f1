// Package ident validates the opaque identifiers used for actors, channels,
// videos, comments and tweets. A valid reference is well formed; it carries
// no guarantee that the referenced record exists.
package ident

import (
	"strings"

	"github.com/google/uuid"

	"github.com/d60-Lab/mediahub/pkg/apperrors"
)

// New returns a fresh identifier.
func New() string { return uuid.NewString() }

// Valid reports whether id is a canonical UUID string.
func Valid(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// Check returns an InvalidReference error naming field when id is malformed.
func Check(field, id string) error {
	id = strings.TrimSpace(id)
	if !Valid(id) {
		return apperrors.InvalidReference(field, id)
	}
	return nil
}

// CheckAll validates pairs of (field, id) and stops at the first bad one.
func CheckAll(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := Check(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}
