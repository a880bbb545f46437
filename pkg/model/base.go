package model

import (
	"fmt"
	"regexp"
	"strings"
)

// invalidIdentChars matches everything outside the interop-safe charset.
var invalidIdentChars = regexp.MustCompile(`[^.A-Za-z0-9_-]`)

// NormalizeIdentifier strips characters outside [.A-Za-z0-9_-] from raw and
// verifies the result is 1 to 100 characters long. Stripping is silent; only
// an empty or over-long result is an error.
func NormalizeIdentifier(raw string) (string, error) {
	id := invalidIdentChars.ReplaceAllString(strings.TrimSpace(raw), "")
	if id == "" {
		return "", fmt.Errorf("model: identifier %q contains no valid characters", raw)
	}
	if len(id) > 100 {
		return "", fmt.Errorf("model: identifier %q is %d characters, maximum is 100", id, len(id))
	}
	return id, nil
}

// base carries the naming fields shared by every entity. The identifier is
// fixed at construction; duplication produces a new entity with a new base.
type base struct {
	identifier  string
	displayName string
}

func newBase(identifier string) (base, error) {
	id, err := NormalizeIdentifier(identifier)
	if err != nil {
		return base{}, err
	}
	return base{identifier: id, displayName: identifier}, nil
}

// Identifier returns the normalized, immutable identifier.
func (b *base) Identifier() string { return b.identifier }

// DisplayName returns the display name, which defaults to the raw identifier
// passed at construction and may contain any characters.
func (b *base) DisplayName() string { return b.displayName }

// SetDisplayName replaces the display name. Unlike the identifier, the
// display name is free-form and mutable.
func (b *base) SetDisplayName(name string) { b.displayName = name }
