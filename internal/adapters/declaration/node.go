package declaration

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/relock/internal/core/ports"
)

// NodeID is the unique identifier for the declaration finder Graft node.
const NodeID graft.ID = "adapter.declaration"

func init() {
	graft.Register(graft.Node[ports.DeclarationFinder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.DeclarationFinder, error) {
			return New(), nil
		},
	})
}
