package positions

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a position does not exist.
var ErrNotFound = errors.New("position not found")

// Repo is the narrow write interface synthesis needs.
type Repo interface {
	UpdateSynthesis(ctx context.Context, positionID string, update SynthesisUpdate) error
}
