// Package vin validates vehicle identification numbers and resolves them
// against the local garage and the NHTSA vPIC decoder.
package vin

import (
	"errors"
	"strings"
)

// Length is the number of characters in a vehicle identification number.
const Length = 17

// ErrInvalidFormat is returned when a VIN is not exactly 17 alphanumeric characters.
var ErrInvalidFormat = errors.New("vin must be exactly 17 alphanumeric characters")

// Normalize trims surrounding whitespace and uppercases a VIN so lookups
// are case-insensitive.
func Normalize(vin string) string {
	return strings.ToUpper(strings.TrimSpace(vin))
}

// Validate reports whether the given VIN is well-formed. It checks length
// and the alphanumeric alphabet only; the check digit is not verified.
func Validate(vin string) error {
	if len(vin) != Length {
		return ErrInvalidFormat
	}
	for _, r := range vin {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'Z':
		case r >= 'a' && r <= 'z':
		default:
			return ErrInvalidFormat
		}
	}
	return nil
}
