package surface

import "errors"

// Configuration errors. Build and Validate wrap these with the offending
// field and value; match them with errors.Is.
var (
	ErrZeroDivisor        = errors.New("zero divisor")
	ErrNonFinite          = errors.New("non-finite value")
	ErrInvalidStep        = errors.New("grid step must be positive")
	ErrDegenerateRange    = errors.New("grid range min exceeds max")
	ErrInvalidTangentStep = errors.New("tangent step must be non-zero")
)
