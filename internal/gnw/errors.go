package gnw

import "errors"

// InvalidID is returned by Add on failure and by lookups that find nothing.
const InvalidID = -1

var (
	ErrNotInitialized = errors.New("window manager not initialized")
	ErrRegistryFull   = errors.New("window registry full")
	ErrTooLarge       = errors.New("window larger than screen")
	ErrNoMemory       = errors.New("window buffer allocation failed")
)
