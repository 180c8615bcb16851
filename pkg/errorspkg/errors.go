// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
//
// Repositories log the underlying cause and return ErrInternal so storage details never
// reach API clients.
var ErrInternal = errors.New("internal")
