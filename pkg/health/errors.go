package health

import "errors"

// ErrCheckTimeout is reported for a check that outlives its deadline.
var ErrCheckTimeout = errors.New("health: check timed out")
