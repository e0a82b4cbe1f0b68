// Package sentinel holds the storage facts that stores report and services
// translate into coded domain errors.
package sentinel

import "errors"

var (
	// ErrNotFound means no volunteer record exists under the key.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a write lost an optimistic version check, or a
	// unique key (volunteer id, email) is already taken.
	ErrConflict = errors.New("conflict")
)
