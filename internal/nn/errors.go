package nn

import (
	"errors"

	"github.com/born-ml/backprop/internal/data"
)

// Common errors.
var (
	ErrInvalidTopology   = errors.New("invalid topology: need at least 2 layer sizes, all positive")
	ErrUnknownActivation = errors.New("unknown activation")
	ErrUnknownLoss       = errors.New("unknown loss")
	ErrNilTrace          = errors.New("backward: nil trace")
	ErrStaleTrace        = errors.New("backward: trace does not match current parameters")
	ErrStateDict         = errors.New("invalid state dict")

	// ErrShape is shared with the data package so one errors.Is check covers
	// both network and dataset mismatches.
	ErrShape = data.ErrShape
)

// ShapeError reports a vector of the wrong length.
type ShapeError = data.ShapeError
