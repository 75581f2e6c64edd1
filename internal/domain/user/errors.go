package user

import (
	"errors"
	"fmt"
)

var ErrUserNotFound = errors.New("user not found")

// DirectoryError is a rejection from the external directory service for a
// single operation. It is recorded per record and never aborts a batch.
type DirectoryError struct {
	StatusCode int
	Message    string
}

func (e *DirectoryError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("directory: %s (status %d)", e.Message, e.StatusCode)
	}
	return "directory: " + e.Message
}
