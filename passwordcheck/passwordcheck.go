// SPDX-License-Identifier: GPL-3.0-only

package passwordcheck

import (
	"errors"
)

const minPasswordLength = 8

// ValidatePassword enforces the signup password policy.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	if len([]rune(password)) < minPasswordLength {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}
