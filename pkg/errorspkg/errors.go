// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates an internal server error. Repositories and
// services return it instead of leaking driver errors to clients.
var ErrInternal = errors.New("internal")
