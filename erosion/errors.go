package erosion

import "errors"

var (
	ErrGridTooSmall   = errors.New("grid must be at least 3x3")
	ErrShape          = errors.New("field shape does not match grid")
	ErrNonSquare      = errors.New("mesh spacing not square")
	ErrNotHeightfield = errors.New("vertices do not form a regular heightfield")
	ErrInvalidState   = errors.New("invalid erosion parameters")
	ErrUnstable       = errors.New("diffusion step is unstable")
	ErrUnknownChannel = errors.New("unknown diagnostic channel")
	ErrUnknownBackend = errors.New("unknown backend")
)
