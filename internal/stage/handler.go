package stage

import (
	"context"

	"bindery/internal/aip"
)

// Handler is the contract the batch driver needs from each pipeline stage.
// Execute mutates the item's folder under the batch root and reports the
// outcome explicitly: nil for success, a *services.Divert for a terminal
// per-AIP error, any other error for an unexpected failure.
type Handler interface {
	Name() string
	Execute(ctx context.Context, item *aip.Item) error
}
