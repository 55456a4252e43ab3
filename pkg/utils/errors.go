package utils

import "fmt"

// Wrap adds context to an error message, preserving err for errors.Is/As.
// Returns nil if err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
