// Package util provides helpers shared by the CLI.
package util

import "github.com/google/uuid"

// NewOperationID returns a random v4 UUID used to correlate the log lines
// of one command invocation.
func NewOperationID() string {
	return uuid.NewString()
}
